package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetLevel(t *testing.T) {
	defer Log.SetLevel(logrus.InfoLevel)

	tests := []struct {
		level   string
		want    logrus.Level
		wantErr bool
	}{
		{level: "debug", want: logrus.DebugLevel},
		{level: "WARN", want: logrus.WarnLevel},
		{level: "warning", want: logrus.WarnLevel},
		{level: " error ", want: logrus.ErrorLevel},
		{level: "", want: logrus.InfoLevel},
		{level: "trace", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			Log.SetLevel(logrus.InfoLevel)
			err := SetLevel(tt.level)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if Log.GetLevel() != tt.want {
				t.Errorf("level = %v, want %v", Log.GetLevel(), tt.want)
			}
		})
	}
}
