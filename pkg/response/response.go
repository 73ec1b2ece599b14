package response

type ResponseCode int

// 统一业务代码
const (
	Success ResponseCode = 100
)

// Response 统一响应体
// Warning 只在请求成功但部分数据降级时出现
type Response struct {
	Message string       `json:"message"`
	Code    ResponseCode `json:"code"`
	Data    any          `json:"data"`
	Warning string       `json:"warning,omitempty"`
}

type ResponseOptions func(*Response)

func WithMessage(message string) ResponseOptions {
	return func(r *Response) {
		r.Message = message
	}
}

func WithCode(code ResponseCode) ResponseOptions {
	return func(r *Response) {
		r.Code = code
	}
}

func WithData(data any) ResponseOptions {
	return func(r *Response) {
		r.Data = data
	}
}

func WithWarning(warning string) ResponseOptions {
	return func(r *Response) {
		r.Warning = warning
	}
}

func CustomResponse(opts ...ResponseOptions) Response {
	response := Response{Message: "success", Code: Success}
	for _, opt := range opts {
		opt(&response)
	}
	return response
}

func SuccessResponse(data any) Response {
	return CustomResponse(WithData(data))
}

func ErrorResponse(code ResponseCode, msg string) Response {
	return Response{
		Message: msg,
		Code:    code,
	}
}
