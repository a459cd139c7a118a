package util

import (
	"encoding/json"
	"net/http"
)

// Response 成功回應的統一格式
type Response struct {
	Data any `json:"data"`
	Meta any `json:"meta,omitempty"`
}

// ResponseError 錯誤回應的統一格式
type ResponseError struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

func SuccessJSON(w http.ResponseWriter, data any, meta any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(Response{
		Data: data,
		Meta: meta,
	})
}

// ErrorJSON code同時作為http status與body內的錯誤碼
// detail為nil時body不帶data欄位
func ErrorJSON(w http.ResponseWriter, code int, detail any, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(ResponseError{
		Code: code,
		Msg:  msg,
		Data: detail,
	})
}
