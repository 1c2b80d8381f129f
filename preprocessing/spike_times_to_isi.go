package preprocessing

import (
	"github.com/YuminosukeSato/spikelib/core/tensor"
	"gonum.org/v1/gonum/mat"
)

// SpikeTimesToISITransform はスパイク時刻列を隣接要素の差分 (ISI) に変換する
//
// 出力長は入力長より1短い。長さ1以下の列は空の列になる。
// パラメータを持たない純粋関数。
type SpikeTimesToISITransform struct {
	BaseSpikeTrainTransform
}

// NewSpikeTimesToISITransform は新しい SpikeTimesToISITransform を作成する
func NewSpikeTimesToISITransform() *SpikeTimesToISITransform {
	return &SpikeTimesToISITransform{}
}

// Fit は何もせずに自身を返す
func (d *SpikeTimesToISITransform) Fit(X interface{}, y mat.Vector) *SpikeTimesToISITransform {
	return d
}

// TensorTransform は axis に沿って一階差分を取る
// 出力は axis の長さが1短い矩形テンソル
func (d *SpikeTimesToISITransform) TensorTransform(X *tensor.Dense, axis int) (tensor.Batch, error) {
	a, err := tensor.NormalizeAxis(axis, X.NDim())
	if err != nil {
		return nil, err
	}
	outLen := X.Shape()[a] - 1
	if outLen < 0 {
		outLen = 0
	}
	out, err := tensor.MapLanes(X, a, outLen, d.SingleTrainTransform)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SingleTrainTransform は out[i] = train[i+1] - train[i] を返す
func (d *SpikeTimesToISITransform) SingleTrainTransform(train []float64) ([]float64, error) {
	if len(train) <= 1 {
		return []float64{}, nil
	}
	out := make([]float64, len(train)-1)
	for i := range out {
		out[i] = train[i+1] - train[i]
	}
	return out, nil
}

// GetParams はパラメータを取得
func (d *SpikeTimesToISITransform) GetParams() map[string]interface{} {
	return map[string]interface{}{}
}

// String は文字列表現を返す
func (d *SpikeTimesToISITransform) String() string {
	return "SpikeTimesToISITransform()"
}
