package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	v "github.com/asaskevich/govalidator"
	"github.com/techstore/admin-manager/internal/dependency"
	"github.com/techstore/admin-manager/internal/entity"
)

var ErrDriverNotFound = errors.New("driver not found")

type driverStore struct {
	*MYSQLStore
}

// Drivers returns an object implementing the Drivers interface.
func (ms *MYSQLStore) Drivers() dependency.Drivers {
	return &driverStore{MYSQLStore: ms}
}

func (ms *MYSQLStore) AddDriver(ctx context.Context, drv *entity.DriverNew) (int, error) {
	if ok, err := v.ValidateStruct(drv); !ok {
		return 0, fmt.Errorf("invalid driver: %w", err)
	}
	if drv.Status == "" {
		drv.Status = entity.DriverActive
	}
	if !entity.IsValidDriverStatus(drv.Status) {
		return 0, fmt.Errorf("unknown driver status %q", drv.Status)
	}

	id, err := ExecNamedLastId(ctx, ms.db, `
		INSERT INTO driver (name, email, phone, vehicle, status, updated_at)
		VALUES (:name, :email, :phone, :vehicle, :status, :updatedAt)`,
		map[string]any{
			"name":      drv.Name,
			"email":     drv.Email,
			"phone":     drv.Phone,
			"vehicle":   drv.Vehicle,
			"status":    drv.Status,
			"updatedAt": ms.Now(),
		})
	if err != nil {
		if ms.IsErrUniqueViolation(err) {
			return 0, fmt.Errorf("driver with email %q already exists", drv.Email)
		}
		return 0, fmt.Errorf("can't insert driver: %w", err)
	}
	return id, nil
}

func (ms *MYSQLStore) assignedOrderIds(ctx context.Context, driverIds []int) (map[int][]int, error) {
	if len(driverIds) == 0 {
		return map[int][]int{}, nil
	}
	rows, err := QueryListNamed[struct {
		OrderID  int `db:"id"`
		DriverID int `db:"driver_id"`
	}](ctx, ms.db, `
		SELECT id, driver_id
		FROM customer_order
		WHERE driver_id IN (:driverIds) AND status NOT IN (:terminal)
		ORDER BY id`,
		map[string]any{
			"driverIds": driverIds,
			"terminal":  []string{string(entity.Delivered), string(entity.Cancelled)},
		})
	if err != nil {
		return nil, fmt.Errorf("can't get assigned orders: %w", err)
	}
	byDriver := make(map[int][]int, len(driverIds))
	for _, r := range rows {
		byDriver[r.DriverID] = append(byDriver[r.DriverID], r.OrderID)
	}
	return byDriver, nil
}

func (ms *MYSQLStore) getDriver(ctx context.Context, where string, params map[string]any) (*entity.DriverFull, error) {
	driver, err := QueryNamedOne[entity.Driver](ctx, ms.db, fmt.Sprintf(`
		SELECT id, name, email, phone, vehicle, status, updated_at
		FROM driver
		WHERE %s`, where), params)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDriverNotFound
		}
		return nil, fmt.Errorf("can't get driver: %w", err)
	}

	assigned, err := ms.assignedOrderIds(ctx, []int{driver.ID})
	if err != nil {
		return nil, err
	}
	return &entity.DriverFull{
		Driver:           driver,
		AssignedOrderIDs: assigned[driver.ID],
	}, nil
}

func (ms *MYSQLStore) GetDriverById(ctx context.Context, id int) (*entity.DriverFull, error) {
	return ms.getDriver(ctx, "id = :id", map[string]any{"id": id})
}

func (ms *MYSQLStore) GetDriverByEmail(ctx context.Context, email string) (*entity.DriverFull, error) {
	return ms.getDriver(ctx, "email = :email", map[string]any{"email": email})
}

func (ms *MYSQLStore) ListDrivers(ctx context.Context) ([]entity.DriverFull, error) {
	drivers, err := QueryListNamed[entity.Driver](ctx, ms.db, `
		SELECT id, name, email, phone, vehicle, status, updated_at
		FROM driver
		ORDER BY name, id`,
		map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("can't list drivers: %w", err)
	}
	if len(drivers) == 0 {
		return []entity.DriverFull{}, nil
	}

	ids := make([]int, 0, len(drivers))
	for _, d := range drivers {
		ids = append(ids, d.ID)
	}
	assigned, err := ms.assignedOrderIds(ctx, ids)
	if err != nil {
		return nil, err
	}

	full := make([]entity.DriverFull, 0, len(drivers))
	for _, d := range drivers {
		full = append(full, entity.DriverFull{
			Driver:           d,
			AssignedOrderIDs: assigned[d.ID],
		})
	}
	return full, nil
}

func (ms *MYSQLStore) UpdateDriver(ctx context.Context, drv *entity.DriverNew, id int) error {
	if ok, err := v.ValidateStruct(drv); !ok {
		return fmt.Errorf("invalid driver: %w", err)
	}
	if !entity.IsValidDriverStatus(drv.Status) {
		return fmt.Errorf("unknown driver status %q", drv.Status)
	}

	err := ExecNamed(ctx, ms.db, `
		UPDATE driver
		SET name = :name, email = :email, phone = :phone,
			vehicle = :vehicle, status = :status, updated_at = :updatedAt
		WHERE id = :id`,
		map[string]any{
			"id":        id,
			"name":      drv.Name,
			"email":     drv.Email,
			"phone":     drv.Phone,
			"vehicle":   drv.Vehicle,
			"status":    drv.Status,
			"updatedAt": ms.Now(),
		})
	if err != nil {
		if ms.IsErrUniqueViolation(err) {
			return fmt.Errorf("driver with email %q already exists", drv.Email)
		}
		return fmt.Errorf("can't update driver: %w", err)
	}
	return nil
}

func (ms *MYSQLStore) DeleteDriverById(ctx context.Context, id int) error {
	err := ExecNamed(ctx, ms.db, `DELETE FROM driver WHERE id = :id`,
		map[string]any{"id": id})
	if err != nil {
		return fmt.Errorf("can't delete driver: %w", err)
	}
	return nil
}
