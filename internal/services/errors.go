package services

import "fmt"

// ValidationError 必須入力の欠落・空入力を表すエラー（クライアントエラーとして返す）
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// UpstreamError 外部プロバイダの失敗（非2xxまたは不正なペイロード）を表すエラー
type UpstreamError struct {
	Provider string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s の呼び出しに失敗: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
