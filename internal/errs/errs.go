package errs

import (
	"fmt"

	"github.com/google/uuid"
)

// Code 同時作為錯誤分類與 HTTP status
type Code int

const (
	BadRequestCode      Code = 400
	UnauthenticatedCode Code = 401
	UnauthorizedCode    Code = 403
	DataNotExistsCode   Code = 404
	InvalidArgumentCode Code = 422
	InternalErrorCode   Code = 500
)

var ErrStrMap = map[Code]string{
	BadRequestCode:      "bad request",
	UnauthenticatedCode: "unauthenticated",
	UnauthorizedCode:    "unauthorized",
	DataNotExistsCode:   "data not exists",
	InvalidArgumentCode: "invalid argument",
	InternalErrorCode:   "internal server error",
}

// AppError 應用層錯誤，服務層統一回傳此類型
// 底層錯誤(pgx等)不直接暴露給caller，統一包成 InternalErrorCode
type AppError struct {
	Code Code
	Msg  string
	Err  error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New 創建AppError
func New(code Code, msg string) *AppError {
	return &AppError{Code: code, Msg: msg}
}

// Wrap 包裝底層錯誤，保留cause供log使用
func Wrap(code Code, msg string, err error) *AppError {
	return &AppError{Code: code, Msg: msg, Err: err}
}

// InsufficientInventoryError 庫存不足
// 必須帶出實際可用數量，caller才能回報給使用者
type InsufficientInventoryError struct {
	ProductID uuid.UUID
	Requested int32
	Available int32
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("insufficient inventory for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

var (
	ErrEmptyCart       = New(BadRequestCode, "cart is empty")
	ErrInvalidQuantity = New(BadRequestCode, "invalid quantity")
)
