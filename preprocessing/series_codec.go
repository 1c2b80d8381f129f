package preprocessing

import (
	"strconv"
	"strings"

	"github.com/YuminosukeSato/spikelib/dataset"
	"github.com/YuminosukeSato/spikelib/pkg/errors"
)

// DefaultPrecision は文字列へ再エンコードする際の小数点以下の桁数です。
const DefaultPrecision = 2

// ParseSeries は区切り文字で連結された数値文字列をスパイク列に変換する
//
// delimiter が空文字列の場合は連続する空白で分割する。
// 各要素は前後の空白を除去してから float64 として解釈される。
// 空（または空白のみ）の文字列は長さ0のスパイク列になる。
//
// パラメータ:
//   - s: エンコードされたスパイク列 (例: "1.00 2.50 0.75")
//   - delimiter: 区切り文字
//
// 戻り値:
//   - []float64: デコードされたスパイク列
//   - error: 数値に変換できない要素がある場合は SeriesParseError (Row は -1)
func ParseSeries(s, delimiter string) ([]float64, error) {
	// 空白のみのセルは区切り文字に関係なく空のスパイク列とする
	if strings.TrimSpace(s) == "" {
		return []float64{}, nil
	}

	var fields []string
	if delimiter == "" {
		fields = strings.Fields(s)
	} else {
		fields = strings.Split(s, delimiter)
	}

	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, errors.NewSeriesParseError(-1, i, f, err)
		}
		out[i] = v
	}
	return out, nil
}

// FormatSeries はスパイク列を固定小数点表記で連結した文字列に変換する
//
// delimiter が空文字列の場合は半角スペースで連結する。
func FormatSeries(values []float64, delimiter string, precision int) string {
	if delimiter == "" {
		delimiter = " "
	}
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteString(delimiter)
		}
		b.WriteString(strconv.FormatFloat(v, 'f', precision, 64))
	}
	return b.String()
}

// DecodeTable はテーブルの series 列をすべてデコードする
//
// 失敗した場合のエラーには行番号が設定される。
func DecodeTable(t *dataset.Table, delimiter string) ([][]float64, error) {
	trains := make([][]float64, t.Len())
	for i := 0; i < t.Len(); i++ {
		train, err := ParseSeries(t.Series(i), delimiter)
		if err != nil {
			return nil, withRow(err, i)
		}
		trains[i] = train
	}
	return trains, nil
}

// EncodeTable はスパイク列とグループ列から新しいテーブルを作成する
func EncodeTable(trains [][]float64, groups []string, delimiter string, precision int) (*dataset.Table, error) {
	series := make([]string, len(trains))
	for i, tr := range trains {
		series[i] = FormatSeries(tr, delimiter, precision)
	}
	return dataset.NewTable(series, groups)
}

// withRow は SeriesParseError に行番号を設定し直す
func withRow(err error, row int) error {
	var pe *errors.SeriesParseError
	if errors.As(err, &pe) {
		return errors.NewSeriesParseError(row, pe.Field, pe.Value, pe.Err)
	}
	return err
}
