package gonum

import "github.com/basis-fem/basis/engine/opname"

// opTable maps the canonical surface onto the gonum (and james-bowman
// sparse) symbols each operation forwards to; "-" marks operations served
// by hand-written host kernels.
var opTable = opname.Table{
	"zeros":    "-",
	"ones":     "-",
	"full":     "-",
	"empty":    "-",
	"eye":      "-",
	"arange":   "-",
	"linspace": "floats.Span",

	"from_host":    "-",
	"to_host":      "-",
	"device_type":  "-",
	"device_index": "-",

	"add":   "floats.AddTo",
	"sub":   "floats.SubTo",
	"mul":   "floats.MulTo",
	"div":   "floats.DivTo",
	"neg":   "floats.ScaleTo",
	"abs":   "-",
	"sqrt":  "-",
	"scale": "floats.ScaleTo",
	"shift": "floats.AddConst",
	"pow":   "-",

	"sum":     "floats.Sum",
	"prod":    "floats.Prod",
	"mean":    "stat.Mean",
	"max":     "floats.Max",
	"min":     "floats.Min",
	"cumsum":  "floats.CumSum",
	"cumprod": "floats.CumProd",
	"argmax":  "floats.MaxIdx",

	"reshape":     "-",
	"transpose":   "-",
	"concat":      "-",
	"stack":       "-",
	"unstack":     "-",
	"flip":        "-",
	"expand_dims": "-",
	"squeeze":     "-",
	"take":        "-",
	"set_at":      "-",
	"add_at":      "-",
	"cast":        "-",

	"det":    "mat.Det",
	"norm":   "floats.Norm",
	"cross":  "-",
	"matmul": "mat.Dense.Mul",

	"coo_to_csr": "-",
	"coo_spmm":   "sparse.CSR",
	"csr_spmm":   "sparse.CSR",
	"csr_spspmm": "sparse.CSR.Mul",

	"multi_index_matrix":          "-",
	"simplex_shape_function":      "-",
	"simplex_grad_shape_function": "-",
	"simplex_measure":             "-",
	"barycenter":                  "-",
	"bc_to_points":                "-",
	"tensorprod":                  "-",
	"edge_length":                 "-",
	"edge_normal":                 "-",
	"edge_tangent":                "-",
	"triangle_area_3d":            "-",
	"triangle_grad_lambda_2d":     "-",
	"triangle_grad_lambda_3d":     "-",
	"interval_grad_lambda":        "-",
	"tetrahedron_grad_lambda_3d":  "-",

	"vmap": "-",

	"seed":     "-",
	"uniform":  "distuv.Uniform",
	"integers": "-",
	"normal":   "distuv.Normal",
}

// OpNames returns the canonical-to-native operation name table.
func (e *Engine) OpNames() opname.Table { return opTable }
