package response

import "bookswap/internal/apperr"

type Resp struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// New keeps data non-null in the encoded form.
func New(code int, msg string, data interface{}) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

func OK(data interface{}) Resp {
	return New(CodeOK, CodeMsgMap[CodeOK], data)
}

func Error(code int, customMsg string) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return New(code, msg, struct{}{})
}

// FromErr renders any error; untagged errors become a generic 500 without
// leaking internals.
func FromErr(err error) Resp {
	kind := apperr.KindOf(err)
	code := CodeFor(kind)
	if code == CodeServerError {
		return Error(code, "")
	}
	return Error(code, err.Error())
}
