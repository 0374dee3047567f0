package dto

import (
	"time"

	"github.com/techstore/admin-manager/internal/entity"
)

type DriverRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Vehicle string `json:"vehicle"`
	Status  string `json:"status"`
}

func (dr *DriverRequest) ToEntity() *entity.DriverNew {
	status := entity.DriverStatusName(dr.Status)
	if status == "" {
		status = entity.DriverActive
	}
	return &entity.DriverNew{
		Name:    dr.Name,
		Email:   dr.Email,
		Phone:   dr.Phone,
		Vehicle: dr.Vehicle,
		Status:  status,
	}
}

type DriverResponse struct {
	ID               int       `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Vehicle          string    `json:"vehicle"`
	Status           string    `json:"status"`
	AssignedOrderIDs []int     `json:"assignedOrders"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func ConvertDriverFull(df *entity.DriverFull) *DriverResponse {
	if df == nil {
		return nil
	}
	assigned := df.AssignedOrderIDs
	if assigned == nil {
		assigned = []int{}
	}
	return &DriverResponse{
		ID:               df.Driver.ID,
		Name:             df.Driver.Name,
		Email:            df.Driver.Email,
		Phone:            df.Driver.Phone,
		Vehicle:          df.Driver.Vehicle,
		Status:           string(df.Driver.Status),
		AssignedOrderIDs: assigned,
		UpdatedAt:        df.Driver.UpdatedAt,
	}
}

func ConvertDrivers(drivers []entity.DriverFull) []DriverResponse {
	resp := make([]DriverResponse, 0, len(drivers))
	for i := range drivers {
		resp = append(resp, *ConvertDriverFull(&drivers[i]))
	}
	return resp
}
