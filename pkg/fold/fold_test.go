// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package fold_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/locallibrary/pkg/fold"
)

func TestKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Fantasy", "fantasy"},
		{"FANTASY", "fantasy"},
		{"Fántasy", "fantasy"},
		{"  Science   Fiction ", "science fiction"},
		{"Straße", "strasse"},
		{"Ñandú", "nandu"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, fold.Key(tt.in))
		})
	}
}
