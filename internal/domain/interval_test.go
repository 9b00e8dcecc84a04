package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2024, 1, 1, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		s1   time.Time
		e1   time.Time
		s2   time.Time
		e2   time.Time
		want bool
	}{
		{
			name: "полное вложение",
			s1:   at(10, 0), e1: at(12, 0),
			s2: at(10, 30), e2: at(11, 0),
			want: true,
		},
		{
			name: "частичное пересечение справа",
			s1:   at(10, 0), e1: at(11, 0),
			s2: at(10, 30), e2: at(11, 30),
			want: true,
		},
		{
			name: "частичное пересечение слева",
			s1:   at(10, 30), e1: at(11, 30),
			s2: at(10, 0), e2: at(11, 0),
			want: true,
		},
		{
			name: "идентичные интервалы",
			s1:   at(10, 0), e1: at(11, 0),
			s2: at(10, 0), e2: at(11, 0),
			want: true,
		},
		{
			name: "граничат: первый заканчивается, второй начинается",
			s1:   at(10, 0), e1: at(11, 0),
			s2: at(11, 0), e2: at(12, 0),
			want: false,
		},
		{
			name: "граничат: второй заканчивается, первый начинается",
			s1:   at(11, 0), e1: at(12, 0),
			s2: at(10, 0), e2: at(11, 0),
			want: false,
		},
		{
			name: "не пересекаются с зазором",
			s1:   at(10, 0), e1: at(10, 30),
			s2: at(11, 0), e2: at(11, 30),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.s1, tt.e1, tt.s2, tt.e2))
			// Пересечение симметрично
			assert.Equal(t, tt.want, Overlaps(tt.s2, tt.e2, tt.s1, tt.e1))
		})
	}
}
