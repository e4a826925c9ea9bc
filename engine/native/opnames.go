package native

import "github.com/basis-fem/basis/engine/opname"

// opTable maps the canonical surface to the engine's own method names.
// Everything here is implemented in Go; nothing forwards to a wrapped
// library.
var opTable = opname.Table{
	"zeros":    "Zeros",
	"ones":     "Ones",
	"full":     "Full",
	"empty":    "Empty",
	"eye":      "Eye",
	"arange":   "Arange",
	"linspace": "Linspace",

	"from_host":    "FromHost",
	"to_host":      "ToHost",
	"device_type":  "DeviceType",
	"device_index": "DeviceIndex",

	"add":   "Add",
	"sub":   "Sub",
	"mul":   "Mul",
	"div":   "Div",
	"neg":   "Neg",
	"abs":   "Abs",
	"sqrt":  "Sqrt",
	"scale": "Scale",
	"shift": "Shift",
	"pow":   "Pow",

	"sum":     "Sum",
	"prod":    "Prod",
	"mean":    "Mean",
	"max":     "Max",
	"min":     "Min",
	"cumsum":  "CumSum",
	"cumprod": "CumProd",
	"argmax":  "ArgMax",

	"reshape":     "Reshape",
	"transpose":   "Transpose",
	"concat":      "Concat",
	"stack":       "Stack",
	"unstack":     "Unstack",
	"flip":        "Flip",
	"expand_dims": "ExpandDims",
	"squeeze":     "Squeeze",
	"take":        "Take",
	"set_at":      "SetAt",
	"add_at":      "AddAt",
	"cast":        "Cast",

	"det":    "Linalg.Det",
	"norm":   "Linalg.Norm",
	"cross":  "Linalg.Cross",
	"matmul": "Linalg.MatMul",

	"coo_to_csr": "CooToCsr",
	"coo_spmm":   "CooSpmm",
	"csr_spmm":   "CsrSpmm",
	"csr_spspmm": "CsrSpspmm",

	"multi_index_matrix":          "MultiIndexMatrix",
	"simplex_shape_function":      "SimplexShapeFunction",
	"simplex_grad_shape_function": "SimplexGradShapeFunction",
	"simplex_measure":             "SimplexMeasure",
	"barycenter":                  "Barycenter",
	"bc_to_points":                "BcToPoints",
	"tensorprod":                  "Tensorprod",
	"edge_length":                 "EdgeLength",
	"edge_normal":                 "EdgeNormal",
	"edge_tangent":                "EdgeTangent",
	"triangle_area_3d":            "TriangleArea3D",
	"triangle_grad_lambda_2d":     "TriangleGradLambda2D",
	"triangle_grad_lambda_3d":     "TriangleGradLambda3D",
	"interval_grad_lambda":        "IntervalGradLambda",
	"tetrahedron_grad_lambda_3d":  "TetrahedronGradLambda3D",

	"vmap": "Vmap",

	"seed":     "Random.Seed",
	"uniform":  "Random.Uniform",
	"integers": "Random.Integers",
	"normal":   "Random.Normal",
}

// OpNames returns the canonical-to-method mapping.
func (e *Engine) OpNames() opname.Table { return opTable }
