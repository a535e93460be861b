package optics

import (
	"context"
	"math/rand"
	"testing"
)

func generateBenchData(b *testing.B, n, dims int) []*DoubleVector {
	b.Helper()
	rng := rand.New(rand.NewSource(42))
	data := make([]*DoubleVector, n)
	for i := range data {
		values := make([]float64, dims)
		for j := range values {
			values[j] = rng.Float64() * 100
		}
		v, err := NewDoubleVector(DBID(i), values)
		if err != nil {
			b.Fatal(err)
		}
		data[i] = v
	}
	return data
}

func benchTree(b *testing.B, data []*DoubleVector) *RTree[*DoubleVector] {
	b.Helper()
	tree, err := BulkLoad(DefaultIndexConfig(), data)
	if err != nil {
		b.Fatal(err)
	}
	return tree
}

// --- Insert ---

func benchInsert(b *testing.B, n int) {
	b.Helper()
	data := generateBenchData(b, n, 2)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree, _ := NewRTree[*DoubleVector](DefaultIndexConfig())
		for _, o := range data {
			if err := tree.Insert(o); err != nil {
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkInsert_1000(b *testing.B)  { benchInsert(b, 1000) }
func BenchmarkInsert_10000(b *testing.B) { benchInsert(b, 10000) }

// --- Bulk load ---

func benchBulkLoad(b *testing.B, n int) {
	b.Helper()
	data := generateBenchData(b, n, 2)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchTree(b, data)
	}
}

func BenchmarkBulkLoad_1000(b *testing.B)  { benchBulkLoad(b, 1000) }
func BenchmarkBulkLoad_10000(b *testing.B) { benchBulkLoad(b, 10000) }

// --- Queries ---

func benchKNN(b *testing.B, n, k int) {
	b.Helper()
	data := generateBenchData(b, n, 3)
	tree := benchTree(b, data)
	df := NewSpatialDistance[*DoubleVector](EuclideanMetric{})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tree.KNNQuery(data[i%n], k, df); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkKNN_10000_k10(b *testing.B)  { benchKNN(b, 10000, 10) }
func BenchmarkKNN_10000_k100(b *testing.B) { benchKNN(b, 10000, 100) }

func benchRange(b *testing.B, n int, eps DoubleDistance) {
	b.Helper()
	data := generateBenchData(b, n, 3)
	tree := benchTree(b, data)
	df := NewSpatialDistance[*DoubleVector](EuclideanMetric{})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tree.RangeQuery(data[i%n], eps, df); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRange_10000_eps5(b *testing.B)  { benchRange(b, 10000, 5) }
func BenchmarkRange_10000_eps20(b *testing.B) { benchRange(b, 10000, 20) }

func BenchmarkBatchKNN_10000(b *testing.B) {
	data := generateBenchData(b, 10000, 3)
	tree := benchTree(b, data)
	df := NewSpatialDistance[*DoubleVector](EuclideanMetric{})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tree.BatchKNNQuery(context.Background(), data, 10, df, 0); err != nil {
			b.Fatal(err)
		}
	}
}

// --- Full OPTICS ---

func benchOPTICS(b *testing.B, n, workers int) {
	b.Helper()
	data := generateBenchData(b, n, 2)
	tree := benchTree(b, data)
	cfg := DefaultConfig()
	cfg.Epsilon = 10
	cfg.Workers = workers
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := OPTICS[*DoubleVector](tree, data, cfg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkOPTICS_1000(b *testing.B)           { benchOPTICS(b, 1000, 1) }
func BenchmarkOPTICS_5000(b *testing.B)           { benchOPTICS(b, 5000, 1) }
func BenchmarkOPTICS_5000_Parallel4(b *testing.B) { benchOPTICS(b, 5000, 4) }
