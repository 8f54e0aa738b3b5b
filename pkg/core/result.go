package core

// ResultCode 返回给客户端的业务状态码
type ResultCode int

const (
	ResultSuccess       ResultCode = 0
	ResultFail          ResultCode = 1000
	ResultNotLogin      ResultCode = 2001
	ResultNoAuth        ResultCode = 2002
	ResultParamError    ResultCode = 3001
	ResultNotFound      ResultCode = 3004
	ResultConflict      ResultCode = 3009
	ResultRepeatRequest ResultCode = 4001
	ResultBusy          ResultCode = 5003
	ResultInternalError ResultCode = 5000
)

var resultMessages = map[ResultCode]string{
	ResultSuccess:       "成功",
	ResultFail:          "失败",
	ResultNotLogin:      "未登录",
	ResultNoAuth:        "无权限",
	ResultParamError:    "参数错误",
	ResultNotFound:      "记录不存在",
	ResultConflict:      "记录已存在",
	ResultRepeatRequest: "重复请求",
	ResultBusy:          "服务繁忙，请稍后再试",
	ResultInternalError: "服务器内部错误",
}

// Message 状态码对应的默认描述
func (c ResultCode) Message() string {
	if msg, ok := resultMessages[c]; ok {
		return msg
	}
	return resultMessages[ResultFail]
}

// Int 转换为int，写入types.Response
func (c ResultCode) Int() int {
	return int(c)
}
