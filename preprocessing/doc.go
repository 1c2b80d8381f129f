// Package preprocessing はスパイク列の前処理変換を提供します。
//
// すべての変換は SpikeTrainTransformer を実装し、同じ呼び出し口
// (Transform / TransformTensor / TransformTable) から2つの表現に適用できます。
//
//   - テンソルモード (FormatNumpy): *tensor.Dense の指定 axis を時間方向とみなし、
//     残りの軸の各組み合わせを1本のスパイク列として一括変換します。
//   - 文字列モード (それ以外の Format): *dataset.Table の各行の series を
//     デコードして変換し、小数点以下2桁 (WithPrecision で変更可) で書き戻します。
//
// デフォルトでは入力を複製してから変換するため、呼び出し元のデータは変更されません。
// WithInPlace(true) を指定すると入力を直接書き換えます。
//
// 提供する変換:
//
//   - ISIShuffleTransform: 各列の ISI をランダムに並べ替える
//   - TrainBinarizationTransform: ISI 列を時間 bin ごとのスパイク数に変換する
//   - SpikeTimesToISITransform: スパイク時刻列を一階差分に変換する
//   - Pipeline: 上記を順番に組み合わせる
//
// 使用例:
//
//	shuffle := preprocessing.NewISIShuffleTransform(preprocessing.WithRandomState(42))
//	out, err := preprocessing.Transform(shuffle, table, nil,
//	    preprocessing.WithFormat(preprocessing.FormatTable))
package preprocessing
