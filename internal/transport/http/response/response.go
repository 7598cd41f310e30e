package response

import "github.com/gin-gonic/gin"

const (
	CodeOK                 = 0
	CodeBadRequest         = 40000
	CodeFileTooLarge       = 40001
	CodeUnsupportedFile    = 40002
	CodeAuthFailed         = 40100
	CodeProcessorNotFound  = 40401
	CodeExtractionNotFound = 40402
	CodeInternalServer     = 50000
	CodeUploadFailed       = 50201
	CodeExtractionFailed   = 50202
)

type APIResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(200, APIResponse{
		Code:    CodeOK,
		Message: "ok",
		Data:    data,
	})
}

func Error(c *gin.Context, httpStatus, code int, message string) {
	c.JSON(httpStatus, APIResponse{
		Code:    code,
		Message: message,
	})
}
