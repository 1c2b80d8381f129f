package model

// EstimatorState は Fit 済みかどうかを表す
//
// スパイク列変換そのものは学習を必要としないが、行列アダプタは Fit 時の
// 列数を記録し、Transform で一致を確認するためにこの状態を使う。
type EstimatorState int

const (
	// NotFitted は Fit が呼ばれていない状態
	NotFitted EstimatorState = iota
	// Fitted は Fit 済みの状態
	Fitted
)

// String は状態名を返す
func (s EstimatorState) String() string {
	if s == Fitted {
		return "fitted"
	}
	return "not_fitted"
}

// BaseEstimator は Fit 状態を保持する埋め込み用の構造体
type BaseEstimator struct {
	state EstimatorState
}

// State は現在の状態を返す
func (e *BaseEstimator) State() EstimatorState {
	return e.state
}

// IsFitted は Fit 済みかどうかを返す
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted は Fit 済みに設定する
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset は未 Fit の状態に戻す
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}
