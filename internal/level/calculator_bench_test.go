package level

import "testing"

func BenchmarkFromXP(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = FromXP(int64(i % 100000))
	}
}

func BenchmarkProgress(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Progress(int64(i % 100000))
	}
}
