package services

import (
	"context"
	"math/rand"
	"time"
)

// The candidate pool the mock draws from, in fixed order.
var mockCandidates = []FoodResult{
	{Name: "Grilled Chicken", Confidence: 0.92},
	{Name: "Brown Rice", Confidence: 0.88},
	{Name: "Broccoli", Confidence: 0.95},
	{Name: "Salmon", Confidence: 0.89},
	{Name: "Sweet Potato", Confidence: 0.91},
	{Name: "Quinoa", Confidence: 0.87},
	{Name: "Spinach", Confidence: 0.93},
	{Name: "Greek Yogurt", Confidence: 0.90},
}

// MockAnalyzer generates a randomized but plausible analysis without calling
// any external vision or nutrition API. It is the default provider.
type MockAnalyzer struct {
	rng *rand.Rand
}

func NewMockAnalyzer() *MockAnalyzer {
	return &MockAnalyzer{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewMockAnalyzerWithSeed pins the random source for reproducible output.
func NewMockAnalyzerWithSeed(seed int64) *MockAnalyzer {
	return &MockAnalyzer{rng: rand.New(rand.NewSource(seed))}
}

func (a *MockAnalyzer) Analyze(_ context.Context, _ []byte, _ string) (*AnalysisResult, error) {
	n := a.rng.Intn(4) + 2 // 2 to 5 foods
	foods := make([]FoodResult, n)
	copy(foods, mockCandidates[:n])
	for i := range foods {
		foods[i].Nutrition, _ = nutritionFor(foods[i].Name)
	}

	result := assembleAnalysis(foods)
	result.Confidence = 0.85
	return result, nil
}
