// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Darigraye/MEPHI-practice/pkg/pointer"
)

func TestPointerHelpers(t *testing.T) {
	p := pointer.To("Ivanovna")
	assert.Equal(t, "Ivanovna", pointer.Val(p))
	assert.Equal(t, "", pointer.Val[string](nil))
	assert.Equal(t, 7, pointer.Fallback(nil, 7))
	assert.Nil(t, pointer.NilIfZero(""))
	assert.Equal(t, "x", *pointer.NilIfZero("x"))
}
