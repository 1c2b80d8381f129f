package preprocessing

import (
	"fmt"
	"strings"

	"github.com/YuminosukeSato/spikelib/core/tensor"
	"github.com/YuminosukeSato/spikelib/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Pipeline は複数の変換を順番に適用する変換器
//
// テンソルモードでは各ステップの TensorTransform を順に呼ぶ。あるステップが
// *tensor.Ragged を返した後は、残りのステップを列ごとに SingleTrainTransform で
// 適用し、結果は Ragged のままになる。
type Pipeline struct {
	steps []SpikeTrainTransformer
}

// NewPipeline は新しい Pipeline を作成する
// ステップが空の場合は ValidationError を返す
func NewPipeline(steps ...SpikeTrainTransformer) (*Pipeline, error) {
	if len(steps) == 0 {
		return nil, errors.NewValidationError("steps", "pipeline needs at least one step", 0)
	}
	for i, s := range steps {
		if s == nil {
			return nil, errors.NewValidationError("steps", fmt.Sprintf("step %d is nil", i), nil)
		}
	}
	return &Pipeline{steps: append([]SpikeTrainTransformer(nil), steps...)}, nil
}

// Steps はステップのコピーを返す
func (p *Pipeline) Steps() []SpikeTrainTransformer {
	return append([]SpikeTrainTransformer(nil), p.steps...)
}

// Fit は何もせずに自身を返す
func (p *Pipeline) Fit(X interface{}, y mat.Vector) *Pipeline {
	return p
}

// TensorTransform は各ステップを順に適用する
func (p *Pipeline) TensorTransform(X *tensor.Dense, axis int) (tensor.Batch, error) {
	var cur tensor.Batch = X
	for i, step := range p.steps {
		switch b := cur.(type) {
		case *tensor.Dense:
			next, err := step.TensorTransform(b, axis)
			if err != nil {
				return nil, errors.Wrapf(err, "pipeline step %d (%s)", i, transformName(step))
			}
			cur = next
		case *tensor.Ragged:
			next, err := p.raggedStep(step, b)
			if err != nil {
				return nil, errors.Wrapf(err, "pipeline step %d (%s)", i, transformName(step))
			}
			cur = next
		default:
			return nil, errors.NewValueError("Pipeline.TensorTransform", fmt.Sprintf("unexpected batch type %T", cur))
		}
	}
	return cur, nil
}

func (p *Pipeline) raggedStep(step SpikeTrainTransformer, r *tensor.Ragged) (*tensor.Ragged, error) {
	trains := make([][]float64, r.NumTrains())
	for i := range trains {
		out, err := step.SingleTrainTransform(r.Train(i))
		if err != nil {
			return nil, errors.Wrapf(err, "train %d", i)
		}
		trains[i] = out
	}
	return tensor.NewRagged(r.BatchShape(), trains)
}

// SingleTrainTransform は各ステップの SingleTrainTransform を順に適用する
func (p *Pipeline) SingleTrainTransform(train []float64) ([]float64, error) {
	cur := train
	for i, step := range p.steps {
		next, err := step.SingleTrainTransform(cur)
		if err != nil {
			return nil, errors.Wrapf(err, "pipeline step %d (%s)", i, transformName(step))
		}
		cur = next
	}
	return cur, nil
}

// String は文字列表現を返す
func (p *Pipeline) String() string {
	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		if st, ok := s.(fmt.Stringer); ok {
			names[i] = st.String()
		} else {
			names[i] = transformName(s)
		}
	}
	return "Pipeline(" + strings.Join(names, ", ") + ")"
}
