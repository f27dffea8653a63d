package controller

import (
	"net/http"

	"astro_class_backend/internal/service"
	"astro_class_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type FileController struct {
	FileService *service.FileService
}

func NewFileController(fileService *service.FileService) *FileController {
	return &FileController{FileService: fileService}
}

// StageFile godoc
// @Summary 제출 파일 스테이징
// @Description 파일을 임시 저장소에 올리고 연결에 쓸 파일 참조를 돌려준다
// @Tags 파일
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "제출할 파일"
// @Success 200 {object} util.Response{data=service.StagedFile}
// @Failure 400 {object} util.Response "파일 누락"
// @Failure 500 {object} util.Response "스테이징 실패"
// @Router /files [post]
func (c *FileController) StageFile(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, util.MsgFileRequired)
		return
	}

	file, err := header.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	staged, err := c.FileService.Stage(
		ctx.Request.Context(),
		header.Filename,
		file,
		header.Size,
		header.Header.Get("Content-Type"),
	)
	if err != nil {
		if util.IsUploadError(err) {
			util.Error(ctx, http.StatusInternalServerError, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, staged)
}

type AttachFileRequest struct {
	PageID         string `json:"pageId" binding:"required"`
	AssignmentName string `json:"assignmentName" binding:"required"`
	FileID         string `json:"fileId" binding:"required"`
	FileName       string `json:"fileName" binding:"required"`
	FileURL        string `json:"fileUrl"`
}

// AttachFile godoc
// @Summary 스테이징된 파일 연결
// @Description 스테이징된 파일을 학생 페이지의 지정한 과제 속성에 연결한다
// @Tags 파일
// @Accept json
// @Produce json
// @Param body body AttachFileRequest true "연결 정보"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "필수 항목 누락"
// @Failure 500 {object} util.Response
// @Router /files [patch]
func (c *FileController) AttachFile(ctx *gin.Context) {
	var req AttachFileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.MsgMissingFields)
		return
	}

	err := c.FileService.Attach(
		ctx.Request.Context(),
		req.PageID,
		req.AssignmentName,
		req.FileID,
		req.FileName,
		req.FileURL,
	)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": util.MsgFileAttached})
}
