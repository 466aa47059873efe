package core

import (
	"reflect"
	"testing"
)

func TestPrepareEnv(t *testing.T) {
	env := []string{"HOME=/home/u", "PATH=/bin", "QDECK_DEBUG=1", "QDECK_THEME=dark", "AWS_SECRET=x", "broken"}
	tests := []struct {
		name      string
		whitelist []string
		want      []string
	}{
		{"empty whitelist passes through", nil, env},
		{"exact names", []string{"HOME", "PATH"}, []string{"HOME=/home/u", "PATH=/bin"}},
		{"glob", []string{"QDECK_*"}, []string{"QDECK_DEBUG=1", "QDECK_THEME=dark"}},
		{"no match", []string{"NOPE"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PrepareEnv(env, tt.whitelist); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PrepareEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}
