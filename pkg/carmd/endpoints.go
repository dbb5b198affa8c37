package carmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Service paths under the API root. The vehicle lookup endpoints (makes,
// years, models) are all served by `decode` with different query parameters.
const (
	serviceDecode       = "decode"
	serviceMaintenance  = "maint/next"
	serviceSafetyRecall = "articles/safetyrecall"
	serviceWarranty     = "articles/warranty"
	servicePredicted    = "report/predicted"
)

// DecodeVIN returns the VIN explosion for the given VIN. The body is JSON
// with the decoded vehicle under a top-level `data` key.
func (c *Client) DecodeVIN(ctx context.Context, vin string) (*Response, error) {
	vin = strings.TrimSpace(vin)
	if vin == "" {
		return nil, fmt.Errorf("carmd: vin is empty")
	}
	return c.get(ctx, serviceDecode, map[string]string{"vin": vin})
}

// Makes lists the vehicle makes known to CarMD (Toyota, Ford, ...). This is
// the first step of the make → year → model lookup chain.
func (c *Client) Makes(ctx context.Context) (*Response, error) {
	return c.get(ctx, serviceDecode, nil)
}

// Years lists the model years available for a make.
func (c *Client) Years(ctx context.Context, makeName string) (*Response, error) {
	makeName = strings.TrimSpace(makeName)
	if makeName == "" {
		return nil, fmt.Errorf("carmd: make is empty")
	}
	return c.get(ctx, serviceDecode, map[string]string{"make": makeName})
}

// Models lists the models available for a make and 4-digit year.
func (c *Client) Models(ctx context.Context, year int, makeName string) (*Response, error) {
	makeName = strings.TrimSpace(makeName)
	if makeName == "" {
		return nil, fmt.Errorf("carmd: make is empty")
	}
	return c.get(ctx, serviceDecode, map[string]string{
		"year": strconv.Itoa(year),
		"make": makeName,
	})
}

// NextMaintenance returns the next scheduled maintenance items for a VIN at
// the given mileage.
func (c *Client) NextMaintenance(ctx context.Context, vin string, mileage int) (*Response, error) {
	vin = strings.TrimSpace(vin)
	if vin == "" {
		return nil, fmt.Errorf("carmd: vin is empty")
	}
	return c.get(ctx, serviceMaintenance, map[string]string{
		"vin":     vin,
		"mileage": strconv.Itoa(mileage),
	})
}

// SafetyRecalls lists safety recalls for a CarMD vehicle ID.
func (c *Client) SafetyRecalls(ctx context.Context, vehicleID string) (*Response, error) {
	vehicleID = strings.TrimSpace(vehicleID)
	if vehicleID == "" {
		return nil, fmt.Errorf("carmd: vehicleID is empty")
	}
	return c.get(ctx, serviceSafetyRecall, map[string]string{"vehicleID": vehicleID})
}

// Warranty returns warranty coverage entries for a CarMD vehicle ID.
func (c *Client) Warranty(ctx context.Context, vehicleID string) (*Response, error) {
	vehicleID = strings.TrimSpace(vehicleID)
	if vehicleID == "" {
		return nil, fmt.Errorf("carmd: vehicleID is empty")
	}
	return c.get(ctx, serviceWarranty, map[string]string{"vehicleID": vehicleID})
}

// RepairQuery selects the subject of a predicted repair report. Exactly one
// selector is used, preferred in field order: VehicleID, then Tag, then
// FleetID.
type RepairQuery struct {
	VehicleID string
	Tag       string
	FleetID   string
}

func (q RepairQuery) params() (map[string]string, error) {
	switch {
	case strings.TrimSpace(q.VehicleID) != "":
		return map[string]string{"vehicleID": strings.TrimSpace(q.VehicleID)}, nil
	case strings.TrimSpace(q.Tag) != "":
		return map[string]string{"tag": strings.TrimSpace(q.Tag)}, nil
	case strings.TrimSpace(q.FleetID) != "":
		return map[string]string{"fleetID": strings.TrimSpace(q.FleetID)}, nil
	default:
		return nil, fmt.Errorf("carmd: repair query needs a vehicleID, tag, or fleetID")
	}
}

// PredictedRepairs fetches the predicted repair report for the queried
// vehicle, tag, or fleet: possible issues for the next 12 months with their
// likelihood. No request is made when the query selects nothing.
func (c *Client) PredictedRepairs(ctx context.Context, q RepairQuery) (*Response, error) {
	params, err := q.params()
	if err != nil {
		return nil, err
	}
	return c.get(ctx, servicePredicted, params)
}
