package gonum

import (
	"github.com/basis-fem/basis/internal/arrayops"
	"github.com/basis-fem/basis/tensor"
)

func (e *Engine) MultiIndexMatrix(p, td int) (tensor.Tensor, error) {
	out, err := arrayops.MultiIndexMatrix(p, td)
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}

func (e *Engine) shapeFnArrays(bc, mi tensor.Tensor) (*tensor.Array, *tensor.Array, error) {
	gbc, err := asGonum(bc)
	if err != nil {
		return nil, nil, err
	}
	if mi == nil {
		return gbc.arr, nil, nil
	}
	gmi, err := asGonum(mi)
	if err != nil {
		return nil, nil, err
	}
	return gbc.arr, gmi.arr, nil
}

func (e *Engine) SimplexShapeFunction(bc tensor.Tensor, p int, mi tensor.Tensor) (tensor.Tensor, error) {
	bcArr, miArr, err := e.shapeFnArrays(bc, mi)
	if err != nil {
		return nil, err
	}
	out, err := arrayops.SimplexShapeFunction(bcArr, p, miArr)
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}

func (e *Engine) SimplexGradShapeFunction(bc tensor.Tensor, p int, mi tensor.Tensor) (tensor.Tensor, error) {
	bcArr, miArr, err := e.shapeFnArrays(bc, mi)
	if err != nil {
		return nil, err
	}
	out, err := arrayops.SimplexGradShapeFunction(bcArr, p, miArr)
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}

func (e *Engine) pairArrays(a, b tensor.Tensor) (*tensor.Array, *tensor.Array, error) {
	ga, err := asGonum(a)
	if err != nil {
		return nil, nil, err
	}
	gb, err := asGonum(b)
	if err != nil {
		return nil, nil, err
	}
	return ga.arr, gb.arr, nil
}

func (e *Engine) SimplexMeasure(entity, node tensor.Tensor) (tensor.Tensor, error) {
	ent, nd, err := e.pairArrays(entity, node)
	if err != nil {
		return nil, err
	}
	out, err := arrayops.SimplexMeasure(ent, nd)
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}

func (e *Engine) Barycenter(entity, node tensor.Tensor) (tensor.Tensor, error) {
	ent, nd, err := e.pairArrays(entity, node)
	if err != nil {
		return nil, err
	}
	out, err := arrayops.Barycenter(ent, nd)
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}

func (e *Engine) BcToPoints(bc, node, entity tensor.Tensor) (tensor.Tensor, error) {
	gbc, err := asGonum(bc)
	if err != nil {
		return nil, err
	}
	ent, nd, err := e.pairArrays(entity, node)
	if err != nil {
		return nil, err
	}
	out, err := arrayops.BcToPoints(gbc.arr, nd, ent)
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}

func (e *Engine) Tensorprod(ts ...tensor.Tensor) (tensor.Tensor, error) {
	arrs := make([]*tensor.Array, len(ts))
	for i, t := range ts {
		gt, err := asGonum(t)
		if err != nil {
			return nil, err
		}
		arrs[i] = gt.arr
	}
	out, err := arrayops.Tensorprod(arrs...)
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}

func (e *Engine) EdgeLength(edge, node tensor.Tensor) (tensor.Tensor, error) {
	ent, nd, err := e.pairArrays(edge, node)
	if err != nil {
		return nil, err
	}
	out, err := arrayops.EdgeLength(ent, nd)
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}

func (e *Engine) EdgeNormal(edge, node tensor.Tensor, unit bool) (tensor.Tensor, error) {
	ent, nd, err := e.pairArrays(edge, node)
	if err != nil {
		return nil, err
	}
	out, err := arrayops.EdgeNormal(ent, nd, unit)
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}

func (e *Engine) EdgeTangent(edge, node tensor.Tensor, unit bool) (tensor.Tensor, error) {
	ent, nd, err := e.pairArrays(edge, node)
	if err != nil {
		return nil, err
	}
	out, err := arrayops.EdgeTangent(ent, nd, unit)
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}

func (e *Engine) TriangleArea3D(tri, node tensor.Tensor) (tensor.Tensor, error) {
	ent, nd, err := e.pairArrays(tri, node)
	if err != nil {
		return nil, err
	}
	out, err := arrayops.TriangleArea3D(ent, nd)
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}

func (e *Engine) TriangleGradLambda2D(tri, node tensor.Tensor) (tensor.Tensor, error) {
	ent, nd, err := e.pairArrays(tri, node)
	if err != nil {
		return nil, err
	}
	out, err := arrayops.TriangleGradLambda2D(ent, nd)
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}

func (e *Engine) TriangleGradLambda3D(tri, node tensor.Tensor) (tensor.Tensor, error) {
	ent, nd, err := e.pairArrays(tri, node)
	if err != nil {
		return nil, err
	}
	out, err := arrayops.TriangleGradLambda3D(ent, nd)
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}

func (e *Engine) IntervalGradLambda(line, node tensor.Tensor) (tensor.Tensor, error) {
	ent, nd, err := e.pairArrays(line, node)
	if err != nil {
		return nil, err
	}
	out, err := arrayops.IntervalGradLambda(ent, nd)
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}

func (e *Engine) TetrahedronGradLambda3D(tet, node, localFace tensor.Tensor) (tensor.Tensor, error) {
	ent, nd, err := e.pairArrays(tet, node)
	if err != nil {
		return nil, err
	}
	glf, err := asGonum(localFace)
	if err != nil {
		return nil, err
	}
	out, err := arrayops.TetrahedronGradLambda3D(ent, nd, glf.arr)
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}
