package preprocessing

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/YuminosukeSato/spikelib/core/tensor"
	"gonum.org/v1/gonum/mat"
)

// ISIShuffleTransform は各スパイク列の ISI を独立にランダムに並べ替える
//
// 値の多重集合 (和やヒストグラム) は保たれ、時間的な順序だけが失われる。
// 出力の形状は常に入力と同じになる。
//
// 乱数生成器は同期されていないため、1つのインスタンスを複数の goroutine から
// 同時に使用してはならない。
type ISIShuffleTransform struct {
	BaseSpikeTrainTransform

	randomState int64 // 乱数シード (-1 は時刻から生成)
	rng         *rand.Rand
}

// ISIShuffleOption は ISIShuffleTransform の設定オプション
type ISIShuffleOption func(*ISIShuffleTransform)

// WithRandomState は乱数シードを設定
func WithRandomState(seed int64) ISIShuffleOption {
	return func(s *ISIShuffleTransform) {
		s.randomState = seed
		if seed >= 0 {
			s.rng = rand.New(rand.NewSource(seed))
		}
	}
}

// WithRand は使用する乱数生成器を直接設定
// 複数の変換器で1つの生成器を共有する場合に使う
func WithRand(rng *rand.Rand) ISIShuffleOption {
	return func(s *ISIShuffleTransform) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// NewISIShuffleTransform は新しい ISIShuffleTransform を作成する
//
// 使用例:
//
//	shuffle := preprocessing.NewISIShuffleTransform(preprocessing.WithRandomState(42))
//	out, err := preprocessing.TransformTensor(shuffle, X)
func NewISIShuffleTransform(options ...ISIShuffleOption) *ISIShuffleTransform {
	s := &ISIShuffleTransform{randomState: -1}
	for _, opt := range options {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

// Fit は何もせずに自身を返す
func (s *ISIShuffleTransform) Fit(X interface{}, y mat.Vector) *ISIShuffleTransform {
	return s
}

// TensorTransform は axis に沿った各レーンを独立にシャッフルする
// 受け取ったテンソルを直接書き換え、そのまま返す
func (s *ISIShuffleTransform) TensorTransform(X *tensor.Dense, axis int) (tensor.Batch, error) {
	err := X.UpdateLanes(axis, func(lane []float64) error {
		s.shuffle(lane)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return X, nil
}

// SingleTrainTransform は渡されたスパイク列をその場でシャッフルして返す
func (s *ISIShuffleTransform) SingleTrainTransform(train []float64) ([]float64, error) {
	s.shuffle(train)
	return train, nil
}

func (s *ISIShuffleTransform) shuffle(train []float64) {
	s.rng.Shuffle(len(train), func(i, j int) {
		train[i], train[j] = train[j], train[i]
	})
}

// GetParams はパラメータを取得
func (s *ISIShuffleTransform) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"random_state": s.randomState,
	}
}

// String は文字列表現を返す
func (s *ISIShuffleTransform) String() string {
	return fmt.Sprintf("ISIShuffleTransform(random_state=%d)", s.randomState)
}
