package shared

import (
	"errors"

	"github.com/brandsite-api/internal/http/response"
	"github.com/brandsite-api/internal/logger"
	"github.com/brandsite-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回错误响应；原始错误只记录日志，5xx 记 error，其余记 warn。
func RespondError(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		log := RequestLog(c)
		if appErr.IsServerError() {
			log.Errorw("handler_error", "code", appErr.Code, "message", appErr.Message, "error", err)
		} else {
			log.Warnw("handler_rejected", "code", appErr.Code, "message", appErr.Message, "error", err)
		}
	}
	response.Fail(c, appErr)
}

// RespondValidationError 返回字段级校验错误，违规列表放在 data.violations。
func RespondValidationError(c *gin.Context, verr *service.ValidationError) {
	violations := make([]service.Violation, 0)
	if verr != nil {
		violations = verr.Violations
	}
	response.ErrorWithData(c, response.CodeBadRequest, "validation failed", gin.H{
		"violations": violations,
	})
}

// MappedError 业务错误到接口响应的映射规则。
type MappedError struct {
	Target error
	Code   int
	Msg    string
}

// CommonErrorRules 各接口通用的错误映射
var CommonErrorRules = []MappedError{
	{Target: service.ErrAuthRequired, Code: response.CodeUnauthorized, Msg: "authentication required"},
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Msg: "resource not found"},
	{Target: service.ErrCaptchaRequired, Code: response.CodeBadRequest, Msg: "captcha required"},
	{Target: service.ErrCaptchaInvalid, Code: response.CodeBadRequest, Msg: "captcha invalid"},
}

// RespondMappedError 依次匹配规则返回响应；ValidationError 总是优先输出违规明细。
func RespondMappedError(c *gin.Context, err error, rules []MappedError, fallbackCode int, fallbackMsg string) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		RespondValidationError(c, verr)
		return
	}
	for _, group := range [][]MappedError{rules, CommonErrorRules} {
		for _, rule := range group {
			if errors.Is(err, rule.Target) {
				RespondError(c, rule.Code, rule.Msg, nil)
				return
			}
		}
	}
	RespondError(c, fallbackCode, fallbackMsg, err)
}
