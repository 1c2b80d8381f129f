package model

import (
	"github.com/YuminosukeSato/spikelib/core/tensor"
	"github.com/YuminosukeSato/spikelib/pkg/errors"
	"github.com/YuminosukeSato/spikelib/preprocessing"
	"gonum.org/v1/gonum/mat"
)

// Transformer はデータ変換のインターフェース
type Transformer interface {
	// Fit は変換に必要なパラメータを学習する
	Fit(X mat.Matrix) error

	// Transform はデータを変換する
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// SpikeMatrixTransformer はスパイク列変換を行列に対する Transformer として使うためのアダプタ
//
// 行列の各行を1本のスパイク列として扱う (axis = 1)。
// 出力長が列ごとに異なる変換 (開始時刻と区間長を固定しない二値化など) は
// 行列にできないためエラーになる。
type SpikeMatrixTransformer struct {
	BaseEstimator

	transform  preprocessing.SpikeTrainTransformer
	nFeatures_ int
}

var _ Transformer = (*SpikeMatrixTransformer)(nil)

// NewSpikeMatrixTransformer は新しい SpikeMatrixTransformer を作成する
func NewSpikeMatrixTransformer(tr preprocessing.SpikeTrainTransformer) *SpikeMatrixTransformer {
	return &SpikeMatrixTransformer{transform: tr}
}

// Fit は入力の列数 (スパイク列の長さ) を記録する
func (m *SpikeMatrixTransformer) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("SpikeMatrixTransformer.Fit", "empty data", errors.ErrEmptyData)
	}
	m.nFeatures_ = c
	m.SetFitted()
	return nil
}

// Transform は各行に変換を適用する
// Fit 済みの場合は列数が学習時と一致している必要がある
func (m *SpikeMatrixTransformer) Transform(X mat.Matrix) (mat.Matrix, error) {
	_, c := X.Dims()
	if m.IsFitted() && c != m.nFeatures_ {
		return nil, errors.NewDimensionError("SpikeMatrixTransformer.Transform", m.nFeatures_, c, 1)
	}

	out, err := preprocessing.TransformTensor(m.transform, tensor.FromMatrix(X), preprocessing.WithAxis(1))
	if err != nil {
		return nil, err
	}
	d, ok := out.(*tensor.Dense)
	if !ok {
		return nil, errors.NewModelError("SpikeMatrixTransformer.Transform",
			"transform produced variable-length trains", errors.ErrUnsupportedInput)
	}
	return d.Matrix()
}

// FitTransform はFitとTransformを同時に実行する
func (m *SpikeMatrixTransformer) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := m.Fit(X); err != nil {
		return nil, err
	}
	return m.Transform(X)
}

// NFeatures は Fit 時の列数を返す
func (m *SpikeMatrixTransformer) NFeatures() int {
	return m.nFeatures_
}
