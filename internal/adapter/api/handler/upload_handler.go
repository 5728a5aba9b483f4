package handler

import (
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"viva/internal/adapter/api/middleware"
	"viva/internal/usecase"
	"viva/pkg/errors"
	"viva/pkg/response"
)

// UploadBodyLimit bounds the whole multipart request: the largest accepted
// image plus room for the form framing.
var UploadBodyLimit = strconv.Itoa((usecase.MaxImageSize+512<<10)>>10) + "K"

type UploadHandler struct {
	uploadUseCase *usecase.UploadUseCase
}

func NewUploadHandler(uploadUseCase *usecase.UploadUseCase) *UploadHandler {
	return &UploadHandler{
		uploadUseCase: uploadUseCase,
	}
}

type uploadResponse struct {
	URL string `json:"url"`
}

func (h *UploadHandler) UploadImage(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		var httpErr *echo.HTTPError
		if stderrors.As(err, &httpErr) {
			return response.Error(c, httpErr)
		}
		return response.Error(c, errors.BadRequest("file is required", err))
	}

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.BadRequest("Could not read file", err))
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		head := make([]byte, 512)
		n, _ := src.Read(head)
		contentType = http.DetectContentType(head[:n])
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			return response.Error(c, errors.Internal("Could not rewind file", err))
		}
	}

	url, err := h.uploadUseCase.UploadImage(c.Request().Context(), middleware.UID(c), src, file.Size, contentType)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, uploadResponse{URL: url})
}
