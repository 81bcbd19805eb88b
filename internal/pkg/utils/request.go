package utils

import (
	"medilab-service/internal/pkg/constvars"
	"medilab-service/internal/pkg/dto/requests"
	"net/http"
	"strconv"
)

func BuildPaginationRequest(r *http.Request) *requests.Pagination {
	pageStr := r.URL.Query().Get(constvars.QueryParamPage)
	pageSizeStr := r.URL.Query().Get(constvars.QueryParamPageSize)

	page, err := strconv.Atoi(pageStr)
	if err != nil || page <= 0 {
		page = 1
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize <= 0 {
		pageSize = 10
	}

	return &requests.Pagination{
		Page:     page,
		PageSize: pageSize,
	}
}

func BuildLabOrderQuery(r *http.Request) *requests.LabOrderQuery {
	return &requests.LabOrderQuery{
		PatientID:    r.URL.Query().Get(constvars.QueryParamPatient),
		LaboratoryID: r.URL.Query().Get(constvars.QueryParamLaboratory),
		Status:       r.URL.Query().Get(constvars.QueryParamStatus),
	}
}
