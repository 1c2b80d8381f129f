package preprocessing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/YuminosukeSato/spikelib/core/tensor"
	"github.com/YuminosukeSato/spikelib/dataset"
	"github.com/YuminosukeSato/spikelib/pkg/errors"
	"github.com/YuminosukeSato/spikelib/pkg/log"
	"gonum.org/v1/gonum/mat"
)

// 入力フォーマット
const (
	// FormatNumpy はテンソルモード (axis に沿った一括変換)
	FormatNumpy = "numpy"
	// FormatTable は文字列テーブルモード。FormatNumpy 以外の値はすべてこのモードになる
	FormatTable = "series"
)

// SpikeTrainTransformer はスパイク列変換の共通インターフェース
//
// 具象変換は2つのフックを実装する。TensorTransform はテンソル全体を
// axis に沿って変換し、SingleTrainTransform は1本のスパイク列を変換する。
// ディスパッチは Transform / TransformTensor / TransformTable が担当する。
type SpikeTrainTransformer interface {
	// TensorTransform はテンソル全体を変換する
	// 出力長が固定の場合は *tensor.Dense、可変の場合は *tensor.Ragged を返す
	TensorTransform(X *tensor.Dense, axis int) (tensor.Batch, error)

	// SingleTrainTransform は1本のスパイク列を変換する
	SingleTrainTransform(train []float64) ([]float64, error)
}

// BaseSpikeTrainTransform は抽象基底
//
// 埋め込んだ型がフックを上書きしない場合、呼び出し時に
// ErrNotImplemented を含む ModelError を返す。
type BaseSpikeTrainTransform struct{}

// TensorTransform は未実装エラーを返す
func (BaseSpikeTrainTransform) TensorTransform(*tensor.Dense, int) (tensor.Batch, error) {
	return nil, errors.NewModelError("TensorTransform", "abstract hook", errors.ErrNotImplemented)
}

// SingleTrainTransform は未実装エラーを返す
func (BaseSpikeTrainTransform) SingleTrainTransform([]float64) ([]float64, error) {
	return nil, errors.NewModelError("SingleTrainTransform", "abstract hook", errors.ErrNotImplemented)
}

var _ SpikeTrainTransformer = BaseSpikeTrainTransform{}

// TransformOption はディスパッチの設定オプション
type TransformOption func(*transformConfig)

type transformConfig struct {
	format    string
	axis      int
	delimiter string
	precision int
	inPlace   bool
}

func newTransformConfig(opts []TransformOption) transformConfig {
	cfg := transformConfig{
		format:    FormatNumpy,
		axis:      -1,
		precision: DefaultPrecision,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithFormat は入力フォーマットを設定 (デフォルト: FormatNumpy)
func WithFormat(format string) TransformOption {
	return func(c *transformConfig) {
		c.format = format
	}
}

// WithAxis はテンソルモードで時間方向とみなす軸を設定 (デフォルト: -1)
func WithAxis(axis int) TransformOption {
	return func(c *transformConfig) {
		c.axis = axis
	}
}

// WithDelimiter は文字列モードの区切り文字を設定
// 空文字列 (デフォルト) は空白区切りでデコードし、半角スペースで連結する
func WithDelimiter(delimiter string) TransformOption {
	return func(c *transformConfig) {
		c.delimiter = delimiter
	}
}

// WithPrecision は再エンコード時の小数点以下の桁数を設定 (デフォルト: 2)
func WithPrecision(precision int) TransformOption {
	return func(c *transformConfig) {
		c.precision = precision
	}
}

// WithInPlace は入力を複製せず直接書き換えるかどうかを設定 (デフォルト: false)
//
// true の場合、テンソルモードでは渡したテンソルが変更されることがあり、
// 文字列モードでは渡したテーブルの series 列が行ごとに上書きされる。
// 途中の行で失敗した場合、それより前の行は変更済みのまま残る。
func WithInPlace(inPlace bool) TransformOption {
	return func(c *transformConfig) {
		c.inPlace = inPlace
	}
}

// Transform はフォーマットに応じてテンソルモードか文字列モードに振り分ける
//
// パラメータ:
//   - tr: 変換器
//   - X: FormatNumpy の場合は *tensor.Dense、それ以外は *dataset.Table
//   - y: 互換性のために受け取るが使用しない
//   - opts: WithFormat, WithAxis, WithDelimiter, WithPrecision, WithInPlace
//
// 戻り値:
//   - interface{}: tensor.Batch または *dataset.Table
//   - error: 入力の型がフォーマットと一致しない場合は ValidationError
//
// 使用例:
//
//	out, err := preprocessing.Transform(isi, table, nil,
//	    preprocessing.WithFormat(preprocessing.FormatTable))
func Transform(tr SpikeTrainTransformer, X interface{}, y mat.Vector, opts ...TransformOption) (interface{}, error) {
	cfg := newTransformConfig(opts)
	if cfg.format == FormatNumpy {
		d, ok := X.(*tensor.Dense)
		if !ok || d == nil {
			return nil, unsupportedInput("X", "numpy format requires *tensor.Dense", X)
		}
		return TransformTensor(tr, d, opts...)
	}
	table, ok := X.(*dataset.Table)
	if !ok || table == nil {
		return nil, unsupportedInput("X", "series format requires *dataset.Table", X)
	}
	return TransformTable(tr, table, opts...)
}

// FitTransform は Fit (何もしない) の後に Transform を実行する
func FitTransform(tr SpikeTrainTransformer, X interface{}, y mat.Vector, opts ...TransformOption) (interface{}, error) {
	return Transform(tr, X, y, opts...)
}

func unsupportedInput(param, reason string, value interface{}) error {
	return errors.Mark(errors.NewValidationError(param, reason, fmt.Sprintf("%T", value)),
		errors.ErrUnsupportedInput)
}

// TransformTensor はテンソル全体を axis に沿って変換する
//
// WithInPlace(true) を指定しない限り、X を複製してからフックに渡すため
// 呼び出し元のテンソルは変更されない。
func TransformTensor(tr SpikeTrainTransformer, X *tensor.Dense, opts ...TransformOption) (tensor.Batch, error) {
	cfg := newTransformConfig(opts)
	if X == nil {
		return nil, errors.NewValidationError("X", "tensor is nil", nil)
	}
	if _, err := tensor.NormalizeAxis(cfg.axis, X.NDim()); err != nil {
		return nil, err
	}

	in := X
	if !cfg.inPlace {
		in = X.Clone()
	}

	name := transformName(tr)
	start := time.Now()
	out, err := errors.SafeCall(name+".TensorTransform", func() (tensor.Batch, error) {
		return tr.TensorTransform(in, cfg.axis)
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, errors.NewModelError(name+".TensorTransform", "hook returned no result", errors.ErrEmptyData)
	}

	logger := log.GetLogger()
	if logger.Enabled(context.Background(), log.LevelDebug) {
		lanes, _ := X.NumLanes(cfg.axis)
		logger.Debug("tensor transform completed",
			log.ModelNameKey, name,
			log.OperationKey, log.OperationTransform,
			log.FormatKey, FormatNumpy,
			log.ShapeKey, X.Shape(),
			log.AxisKey, cfg.axis,
			log.TrainsKey, lanes,
			log.RaggedKey, out.IsRagged(),
			log.DurationMsKey, time.Since(start).Milliseconds(),
		)
	}
	return out, nil
}

// TransformTable は各行の series をデコードし、SingleTrainTransform を適用して
// 同じ行に書き戻す。groups 列は変更しない。
//
// WithInPlace(true) を指定しない限り、テーブルを複製してから書き換える。
// 最初に解析できなかった行で処理を中断し、その行番号を含む
// SeriesParseError を返す。
func TransformTable(tr SpikeTrainTransformer, table *dataset.Table, opts ...TransformOption) (*dataset.Table, error) {
	cfg := newTransformConfig(opts)
	if table == nil {
		return nil, errors.NewValidationError("table", "table is nil", nil)
	}
	if cfg.precision < 0 {
		return nil, errors.NewValidationError("precision", "must be non-negative", cfg.precision)
	}

	out := table
	if !cfg.inPlace {
		out = table.Clone()
	}

	name := transformName(tr)
	logger := log.GetLogger().With(log.ModelNameKey, name, log.ComponentKey, "preprocessing")
	start := time.Now()

	for i := 0; i < out.Len(); i++ {
		train, err := ParseSeries(out.Series(i), cfg.delimiter)
		if err != nil {
			err = withRow(err, i)
			logger.Debug("series decode failed", log.ErrAttrKey, err, log.RowKey, i, log.ErrorCodeKey, log.ErrorParseFailure)
			return nil, err
		}
		transformed, err := errors.SafeCall(name+".SingleTrainTransform", func() ([]float64, error) {
			return tr.SingleTrainTransform(train)
		})
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
		out.SetSeries(i, FormatSeries(transformed, cfg.delimiter, cfg.precision))
	}

	logger.Debug("series transform completed",
		log.OperationKey, log.OperationTransform,
		log.FormatKey, cfg.format,
		log.DelimiterKey, cfg.delimiter,
		log.TrainsKey, out.Len(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return out, nil
}

// transformName は "*preprocessing.ISIShuffleTransform" を "ISIShuffleTransform" に短縮する
func transformName(tr SpikeTrainTransformer) string {
	name := fmt.Sprintf("%T", tr)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
