package resolver

import "testing"

func BenchmarkResolveFQN_NestedGeneric(b *testing.B) {
	in := "Map<String, List<IPage<CrsItemVo>>>"

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if got := ResolveFQN(in, testImports); got == in {
			b.Fatal("nothing resolved")
		}
	}
}
