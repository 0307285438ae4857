// Package errors はライブラリ全体のエラーハンドリングと警告システムを提供します。
// scikit-learnの警告・例外システムにインスパイアされており、構造化されたエラー情報を提供します。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("smoothgo-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定します。
// これにより、GridBoundaryWarningなどのカスタム警告の処理方法を制御できます。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが利用可能な場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	// zerologが設定されている場合は優先的に使用
	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	// フォールバック: 従来のハンドラ
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// GridBoundaryWarning は交差検証で選択されたバンド幅が候補グリッドの端に
// ある場合に発生する警告です。真の最小値がグリッドの外側にある可能性を示します。
type GridBoundaryWarning struct {
	Selected float64
	GridMin  float64
	GridMax  float64
}

func (w *GridBoundaryWarning) Error() string {
	return fmt.Sprintf("selected bandwidth %.6g is at the boundary of the candidate grid [%.6g, %.6g]. Consider widening the grid.", w.Selected, w.GridMin, w.GridMax)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *GridBoundaryWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Float64("selected", w.Selected).
		Float64("grid_min", w.GridMin).
		Float64("grid_max", w.GridMax).
		Str("type", "GridBoundaryWarning")
}

// NewGridBoundaryWarning は新しいGridBoundaryWarningを作成します。
func NewGridBoundaryWarning(selected, gridMin, gridMax float64) *GridBoundaryWarning {
	return &GridBoundaryWarning{Selected: selected, GridMin: gridMin, GridMax: gridMax}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// LengthMismatchError は対で与えられるべきスライスの長さが一致しない場合のエラーです。
// 例えば、標本のxとy、あるいは実測値と予測値のペアなど。
type LengthMismatchError struct {
	Op   string
	XLen int
	YLen int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("smoothgo: %s: length mismatch. Expected equal lengths, got %d and %d", e.Op, e.XLen, e.YLen)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *LengthMismatchError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("x_len", e.XLen).
		Int("y_len", e.YLen).
		Str("type", "LengthMismatchError")
}

// NewLengthMismatchError は新しいLengthMismatchErrorを作成し、スタックトレースを付与します。
func NewLengthMismatchError(op string, xLen, yLen int) error {
	err := &LengthMismatchError{Op: op, XLen: xLen, YLen: yLen}
	return errors.WithStack(err)
}

// SingularFitError は局所重み付き最小二乗の正規方程式が特異になり
// 解けなかった場合のエラーです。どのクエリ点で失敗したかを保持します。
type SingularFitError struct {
	Op    string
	Query float64
	Err   error
}

func (e *SingularFitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("smoothgo: %s: singular fit at query point %g: %v", e.Op, e.Query, e.Err)
	}
	return fmt.Sprintf("smoothgo: %s: singular fit at query point %g", e.Op, e.Query)
}

func (e *SingularFitError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *SingularFitError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Float64("query", e.Query).
		Str("type", "SingularFitError")
	if e.Err != nil {
		event.AnErr("cause", e.Err)
	}
}

// NewSingularFitError は新しいSingularFitErrorを作成し、スタックトレースを付与します。
// errors.Is(err, ErrSingularMatrix) で判定できるよう、通常はErrSingularMatrixを包みます。
func NewSingularFitError(op string, query float64, err error) error {
	singularErr := &SingularFitError{Op: op, Query: query, Err: err}
	return errors.WithStack(singularErr)
}

// ValidationError は入力パラメータの検証に失敗した場合のエラーです。
// `ValueError`よりも具体的なバリデーションロジックの失敗を示します。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("smoothgo: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ValueError は引数の値が不適切または不正な場合に発生するエラーです。
// 例えば、空のベクトルに対して評価指標を計算しようとした場合など。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("smoothgo: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ModelError はスムーザーに関する一般的なエラーです。
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("smoothgo: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("smoothgo: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError は新しいModelErrorを作成し、スタックトレースを付与します。
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	数値計算特有のエラー型
//
// ===========================================================================

// NumericalInstabilityError は数値計算が不安定になった場合のエラーです。
// NaN、Inf、オーバーフロー、アンダーフローなどを検出します。
type NumericalInstabilityError struct {
	Operation string    // 発生した操作（例: "KernelSmoother.Evaluate"）
	Values    []float64 // 問題のある値
	Index     int       // 発生した標本またはクエリのインデックス（不明な場合は-1）
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("smoothgo: numerical instability detected in %s at index %d. Values: [%s]",
		e.Operation, e.Index, valStr)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NumericalInstabilityError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Operation).
		Floats64("values", e.Values).
		Int("index", e.Index).
		Str("type", "NumericalInstabilityError")
}

// NewNumericalInstabilityError は新しいNumericalInstabilityErrorを作成します。
func NewNumericalInstabilityError(operation string, values []float64, index int) error {
	err := &NumericalInstabilityError{
		Operation: operation,
		Values:    values,
		Index:     index,
	}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix は特異行列の場合のエラーです。
	ErrSingularMatrix = New("singular matrix")
)
