package preprocessing

import (
	"fmt"
	"math"
	"sort"

	"github.com/YuminosukeSato/spikelib/core/tensor"
	"github.com/YuminosukeSato/spikelib/pkg/errors"
	"github.com/YuminosukeSato/spikelib/pkg/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// maxBins はヒストグラムの bin 数の上限
const maxBins = 1 << 28

// TrainBinarizationTransform は ISI 列をスパイク時刻に変換し、
// 等幅の時間 bin ごとのスパイク数 (またはスパイクの有無) に変換する
//
// 開始時刻と区間長の両方が設定されている場合、すべての列が同じ bin 数になり
// テンソルモードの出力は矩形の *tensor.Dense になる。
// どちらかが未設定の場合、bin 数は各列の観測範囲に依存するため
// 出力は *tensor.Ragged になる。
type TrainBinarizationTransform struct {
	BaseSpikeTrainTransform

	binSize         float64  // bin 幅
	keepSpikeCounts bool     // false の場合は 0/1 に変換
	trainDuration   *float64 // 固定の区間長 (nil の場合は最大スパイク時刻まで)
	startTime       *float64 // 固定の開始時刻 (nil の場合は最小スパイク時刻から)
}

// BinarizationOption は TrainBinarizationTransform の設定オプション
type BinarizationOption func(*TrainBinarizationTransform)

// WithKeepSpikeCounts はスパイク数を保持するかどうかを設定 (デフォルト: true)
func WithKeepSpikeCounts(keep bool) BinarizationOption {
	return func(b *TrainBinarizationTransform) {
		b.keepSpikeCounts = keep
	}
}

// WithTrainDuration は開始時刻からの固定の区間長を設定
func WithTrainDuration(duration float64) BinarizationOption {
	return func(b *TrainBinarizationTransform) {
		b.trainDuration = &duration
	}
}

// WithStartTime は固定の開始時刻を設定
func WithStartTime(start float64) BinarizationOption {
	return func(b *TrainBinarizationTransform) {
		b.startTime = &start
	}
}

// NewTrainBinarizationTransform は新しい TrainBinarizationTransform を作成する
//
// パラメータ:
//   - binSize: bin 幅 (正の有限値)
//   - options: WithKeepSpikeCounts, WithTrainDuration, WithStartTime
//
// 戻り値:
//   - *TrainBinarizationTransform: 新しいインスタンス
//   - error: パラメータが不正な場合は ValidationError
//
// 使用例:
//
//	bin, err := preprocessing.NewTrainBinarizationTransform(10,
//	    preprocessing.WithStartTime(0),
//	    preprocessing.WithTrainDuration(100),
//	    preprocessing.WithKeepSpikeCounts(false))
func NewTrainBinarizationTransform(binSize float64, options ...BinarizationOption) (*TrainBinarizationTransform, error) {
	b := &TrainBinarizationTransform{
		binSize:         binSize,
		keepSpikeCounts: true,
	}
	for _, opt := range options {
		opt(b)
	}

	if errors.CheckScalar("bin_size", binSize) != nil || binSize <= 0 {
		return nil, errors.NewValidationError("bin_size", "must be a positive finite number", binSize)
	}
	if d := b.trainDuration; d != nil && (errors.CheckScalar("train_duration", *d) != nil || *d <= 0) {
		return nil, errors.NewValidationError("train_duration", "must be a positive finite number", *d)
	}
	if s := b.startTime; s != nil && errors.CheckScalar("start_time", *s) != nil {
		return nil, errors.NewValidationError("start_time", "must be finite", *s)
	}
	return b, nil
}

// Fit は何もせずに自身を返す
func (b *TrainBinarizationTransform) Fit(X interface{}, y mat.Vector) *TrainBinarizationTransform {
	return b
}

// FixedSizeOutput は全ての列が同じ bin 数になるかどうかを返す
func (b *TrainBinarizationTransform) FixedSizeOutput() bool {
	return b.startTime != nil && b.trainDuration != nil
}

// NumBins は固定サイズ出力時の bin 数を返す。可変サイズの場合は -1
func (b *TrainBinarizationTransform) NumBins() int {
	if !b.FixedSizeOutput() {
		return -1
	}
	return int(math.Floor((*b.trainDuration + *b.startTime) / b.binSize))
}

// TensorTransform は axis に沿った各レーンをヒストグラムに変換する
func (b *TrainBinarizationTransform) TensorTransform(X *tensor.Dense, axis int) (tensor.Batch, error) {
	if b.FixedSizeOutput() {
		n := b.NumBins()
		if n <= 0 {
			return nil, b.degenerate(*b.startTime, *b.trainDuration+*b.startTime, n)
		}
		out, err := tensor.MapLanes(X, axis, n, b.SingleTrainTransform)
		if err != nil {
			return nil, err
		}
		return out, nil
	}
	out, err := tensor.MapLanesRagged(X, axis, b.SingleTrainTransform)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SingleTrainTransform は1本の ISI 列を bin ごとのスパイク数に変換する
//
// スパイク時刻は ISI の累積和。範囲は [start, end] で最後の bin だけ右端を含み、
// 範囲外のスパイク時刻は無視される。bin 数は floor(end / binSize)。
func (b *TrainBinarizationTransform) SingleTrainTransform(train []float64) ([]float64, error) {
	const op = "TrainBinarizationTransform.SingleTrainTransform"
	if len(train) == 0 {
		return nil, errors.NewModelError(op, "empty spike train", errors.ErrEmptyData)
	}

	times := make([]float64, len(train))
	floats.CumSum(times, train)
	if err := errors.CheckNumericalStability(op, times); err != nil {
		return nil, err
	}

	start := floats.Min(times)
	if b.startTime != nil {
		start = *b.startTime
	}
	end := floats.Max(times)
	if b.trainDuration != nil {
		end = *b.trainDuration + start
	}

	ratio := math.Floor(end / b.binSize)
	if ratio > maxBins {
		return nil, b.degenerate(start, end, maxBins+1)
	}
	nBins := int(ratio)
	if nBins <= 0 || end <= start {
		return nil, b.degenerate(start, end, nBins)
	}

	counts, dropped := histogram(times, start, end, nBins)
	if dropped > 0 {
		log.GetLogger().Debug("spike times outside binning range",
			log.ModelNameKey, "TrainBinarizationTransform",
			log.DroppedSpikesKey, dropped,
			log.BinsKey, nBins,
		)
	}

	for i, c := range counts {
		if !b.keepSpikeCounts && c > 0 {
			c = 1
		}
		counts[i] = float64(float32(c))
	}
	return counts, nil
}

func (b *TrainBinarizationTransform) degenerate(start, end float64, nBins int) error {
	return errors.NewModelError("TrainBinarizationTransform",
		fmt.Sprintf("start=%g end=%g bin_size=%g bins=%d", start, end, b.binSize, nBins),
		errors.ErrDegenerateBinning)
}

// histogram は [start, end] を nBins 個の等幅 bin に分けて times を数える
// 最後の bin は end を含む。範囲外の要素数も返す。
func histogram(times []float64, start, end float64, nBins int) ([]float64, int) {
	x := make([]float64, 0, len(times))
	for _, t := range times {
		if t >= start && t <= end {
			x = append(x, t)
		}
	}
	sort.Float64s(x)

	dividers := make([]float64, nBins+1)
	floats.Span(dividers, start, end)
	dividers[nBins] = math.Nextafter(end, math.Inf(1))

	return stat.Histogram(nil, dividers, x, nil), len(times) - len(x)
}

// GetParams はパラメータを取得
func (b *TrainBinarizationTransform) GetParams() map[string]interface{} {
	params := map[string]interface{}{
		"bin_size":          b.binSize,
		"keep_spike_counts": b.keepSpikeCounts,
		"train_duration":    nil,
		"start_time":        nil,
	}
	if b.trainDuration != nil {
		params["train_duration"] = *b.trainDuration
	}
	if b.startTime != nil {
		params["start_time"] = *b.startTime
	}
	return params
}

// String は文字列表現を返す
func (b *TrainBinarizationTransform) String() string {
	opt := func(p *float64) string {
		if p == nil {
			return "None"
		}
		return fmt.Sprintf("%g", *p)
	}
	return fmt.Sprintf("TrainBinarizationTransform(bin_size=%g, keep_spike_counts=%t, train_duration=%s, start_time=%s)",
		b.binSize, b.keepSpikeCounts, opt(b.trainDuration), opt(b.startTime))
}
