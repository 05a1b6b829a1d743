package apperr

import (
	"errors"
	"fmt"
)

// ValidationError はバリデーションエラーを表す。
type ValidationError struct {
	Field   string // エラーが発生したフィールド名
	Message string // エラーメッセージ
}

// Error はerrorインターフェースを実装する。
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: field=%s, message=%s", e.Field, e.Message)
}

// NewValidationError はValidationErrorを生成する。
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// ProtocolError はMM手順中のプロトコル違反を表す。
// Cause は ErrUnexpectedMessage / ErrUnexpectedPrimitive / ErrUnexpectedIdentity のいずれか。
type ProtocolError struct {
	Procedure string // 手順名
	Expected  string // 期待したメッセージまたはプリミティブ
	Got       string // 実際に受信したもの
	Cause     error
}

// Error はerrorインターフェースを実装する。
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error: procedure=%s, expected=%s, got=%s, cause=%v",
		e.Procedure, e.Expected, e.Got, e.Cause)
}

// Unwrap は根本原因を返す。
func (e *ProtocolError) Unwrap() error {
	return e.Cause
}

// NewUnexpectedMessage は想定外メッセージのProtocolErrorを生成する。
func NewUnexpectedMessage(procedure, expected, got string) *ProtocolError {
	return &ProtocolError{Procedure: procedure, Expected: expected, Got: got, Cause: ErrUnexpectedMessage}
}

// NewUnexpectedPrimitive は想定外プリミティブのProtocolErrorを生成する。
func NewUnexpectedPrimitive(procedure, expected, got string) *ProtocolError {
	return &ProtocolError{Procedure: procedure, Expected: expected, Got: got, Cause: ErrUnexpectedPrimitive}
}

// NewUnexpectedIdentity は扱えない識別子種別のProtocolErrorを生成する。
func NewUnexpectedIdentity(procedure, expected, got string) *ProtocolError {
	return &ProtocolError{Procedure: procedure, Expected: expected, Got: got, Cause: ErrUnexpectedIdentity}
}

// IsProtocolError はerrがProtocolErrorを含むかを判定する。
func IsProtocolError(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}

// ValkeyError はValkeyとの操作エラーを表す。
// errors.Is(err, ErrValkeyConnection) が常に成り立つ。
type ValkeyError struct {
	Operation string // 操作名（HGETALL, HSET等）
	Key       string // 操作対象のキー
	Cause     error  // 根本原因
}

// Error はerrorインターフェースを実装する。
func (e *ValkeyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("valkey error: operation=%s, key=%s, cause=%v",
			e.Operation, e.Key, e.Cause)
	}
	return fmt.Sprintf("valkey error: operation=%s, key=%s", e.Operation, e.Key)
}

// Unwrap は根本原因を返す。
func (e *ValkeyError) Unwrap() error {
	return e.Cause
}

// Is は ErrValkeyConnection との比較で真を返す。
func (e *ValkeyError) Is(target error) bool {
	return target == ErrValkeyConnection
}

// NewValkeyError はValkeyErrorを生成する。
func NewValkeyError(operation, key string, cause error) *ValkeyError {
	return &ValkeyError{
		Operation: operation,
		Key:       key,
		Cause:     cause,
	}
}
