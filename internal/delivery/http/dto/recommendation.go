package dto

type RecommendationsResponse struct {
	Recommendations      []JobResponse `json:"recommendations"`
	TotalCount           int           `json:"totalCount"`
	RecommendationReason string        `json:"recommendationReason"`
}
