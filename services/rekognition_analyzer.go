package services

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// RekognitionAnalyzer detects food labels with AWS Rekognition and matches
// them against the local reference nutrition table. Labels that match
// nothing in the table are dropped; if no label matches at all the request
// falls back to the mock analyzer so an upload never fails analysis.
type RekognitionAnalyzer struct {
	client   *rekognition.Client
	fallback *MockAnalyzer
}

func NewRekognitionAnalyzer(ctx context.Context, region string) (*RekognitionAnalyzer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &RekognitionAnalyzer{
		client:   rekognition.NewFromConfig(cfg),
		fallback: NewMockAnalyzer(),
	}, nil
}

func (r *RekognitionAnalyzer) Analyze(ctx context.Context, image []byte, contentType string) (*AnalysisResult, error) {
	out, err := r.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: image},
		MaxLabels:     aws.Int32(10),
		MinConfidence: aws.Float32(70),
	})
	if err != nil {
		return nil, err
	}

	var foods []FoodResult
	for _, label := range out.Labels {
		if label.Name == nil {
			continue
		}
		nutrition, known := nutritionFor(*label.Name)
		if !known {
			continue
		}
		confidence := 0.0
		if label.Confidence != nil {
			confidence = float64(*label.Confidence) / 100
		}
		foods = append(foods, FoodResult{
			Name:       *label.Name,
			Confidence: confidence,
			Nutrition:  nutrition,
		})
	}

	if len(foods) == 0 {
		return r.fallback.Analyze(ctx, image, contentType)
	}

	result := assembleAnalysis(foods)
	result.Confidence = averageConfidence(foods)
	return result, nil
}

func averageConfidence(foods []FoodResult) float64 {
	var sum float64
	for _, f := range foods {
		sum += f.Confidence
	}
	return sum / float64(len(foods))
}
