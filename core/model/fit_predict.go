package model

import (
	"github.com/YuminosukeSato/spikelib/config"
	"github.com/YuminosukeSato/spikelib/dataset"
	"github.com/YuminosukeSato/spikelib/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Scores は評価指標名から値への対応
type Scores map[string]float64

// FitPredictFunc は特徴量抽出・学習・予測を行う外部ルーチンの契約
//
// 分類器、分割済みの学習用/評価用テーブル (series と groups 列)、
// それぞれのラベル、設定を受け取り、評価指標を返す。
// このモジュールは実装を提供しない。
type FitPredictFunc func(clf Classifier, train, test *dataset.Table, yTrain, yTest []float64, cfg config.Config) (Scores, error)

// CheckFitPredictInputs は FitPredictFunc に渡す入力の整合性を検証する
//
// テーブルが空でないこと、ラベル数が行数と一致すること、
// 学習用と評価用で同じグループが共有されていないことを確認する。
func CheckFitPredictInputs(train, test *dataset.Table, yTrain, yTest []float64) error {
	if train == nil || test == nil || train.Len() == 0 || test.Len() == 0 {
		return errors.NewModelError("CheckFitPredictInputs", "empty split", errors.ErrEmptyData)
	}
	if len(yTrain) != train.Len() {
		return errors.NewDimensionError("CheckFitPredictInputs", train.Len(), len(yTrain), 0)
	}
	if len(yTest) != test.Len() {
		return errors.NewDimensionError("CheckFitPredictInputs", test.Len(), len(yTest), 0)
	}

	trainGroups := make(map[string]bool, train.Len())
	for _, g := range train.Groups() {
		trainGroups[g] = true
	}
	for _, g := range test.Groups() {
		if trainGroups[g] {
			return errors.NewValidationError("groups", "group appears in both train and test", g)
		}
	}
	return nil
}

// LabelMatrix はラベルを Classifier.Fit に渡せる列ベクトルに変換する
func LabelMatrix(y []float64) (*mat.Dense, error) {
	if len(y) == 0 {
		return nil, errors.NewModelError("LabelMatrix", "empty labels", errors.ErrEmptyData)
	}
	return mat.NewDense(len(y), 1, append([]float64(nil), y...)), nil
}
