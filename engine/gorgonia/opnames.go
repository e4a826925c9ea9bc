package gorgonia

import "github.com/basis-fem/basis/engine/opname"

// opTable maps the canonical surface onto gorgonia.org/tensor symbols;
// "-" marks operations served by hand-written host kernels.
var opTable = opname.Table{
	"zeros":    "tensor.New",
	"ones":     "tensor.Ones",
	"full":     "-",
	"empty":    "tensor.New",
	"eye":      "tensor.I",
	"arange":   "-",
	"linspace": "-",

	"from_host":    "tensor.WithBacking",
	"to_host":      "Dense.Data",
	"device_type":  "-",
	"device_index": "-",

	"add":   "tensor.Add",
	"sub":   "tensor.Sub",
	"mul":   "tensor.Mul",
	"div":   "tensor.Div",
	"neg":   "tensor.Mul",
	"abs":   "-",
	"sqrt":  "tensor.Sqrt",
	"scale": "tensor.Mul",
	"shift": "tensor.Add",
	"pow":   "-",

	"sum":     "Dense.Sum",
	"prod":    "-",
	"mean":    "-",
	"max":     "Dense.Max",
	"min":     "Dense.Min",
	"cumsum":  "-",
	"cumprod": "-",
	"argmax":  "Dense.Argmax",

	"reshape":     "Dense.Reshape",
	"transpose":   "Dense.T",
	"concat":      "Dense.Concat",
	"stack":       "Dense.Stack",
	"unstack":     "-",
	"flip":        "-",
	"expand_dims": "Dense.Reshape",
	"squeeze":     "Dense.Reshape",
	"take":        "-",
	"set_at":      "-",
	"add_at":      "-",
	"cast":        "-",

	"det":    "-",
	"norm":   "-",
	"cross":  "-",
	"matmul": "tensor.Dot",

	"coo_to_csr": "-",
	"coo_spmm":   "-",
	"csr_spmm":   "-",
	"csr_spspmm": "-",

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

	"seed":     "rng.NewUniformGenerator",
	"uniform":  "rng.UniformGenerator",
	"integers": "rng.UniformGenerator.Int64n",
	"normal":   "rng.GaussianGenerator",
}

// OpNames returns the canonical-to-native operation name table.
func (e *Engine) OpNames() opname.Table { return opTable }
