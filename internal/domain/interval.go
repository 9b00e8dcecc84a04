package domain

import "time"

// Overlaps проверяет пересечение двух полуоткрытых интервалов [s1, e1) и [s2, e2)
// Интервалы пересекаются тогда и только тогда, когда s1 < e2 && s2 < e1
// Граничные случаи (один интервал заканчивается ровно там, где начинается другой)
// пересечением НЕ считаются:
//   - [10:00, 11:00) и [11:00, 12:00) → нет пересечения
//   - [10:00, 11:00) и [10:30, 11:30) → есть пересечение
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}
