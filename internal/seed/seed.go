package seed

import (
	"fmt"
	"time"

	floordomain "github.com/smallbiznis/tavolo/internal/floor/domain"
	staffdomain "github.com/smallbiznis/tavolo/internal/staff/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EnsureDemoFloor seeds a small floor plan and staff roster for local
// development. Inserts are idempotent.
func EnsureDemoFloor(conn *gorm.DB) error {
	now := time.Now().UTC()

	staff := []staffdomain.Staff{
		{StaffID: "S-0001", FirstName: "Ana", LastName: "Gomez", IsActive: true, CreatedAt: now, UpdatedAt: now},
		{StaffID: "S-0002", FirstName: "Ben", LastName: "Reyes", IsActive: true, CreatedAt: now, UpdatedAt: now},
		{StaffID: "S-0003", FirstName: "Carla", LastName: "Lim", IsActive: false, CreatedAt: now, UpdatedAt: now},
	}
	if err := conn.Clauses(clause.OnConflict{DoNothing: true}).Create(&staff).Error; err != nil {
		return err
	}

	tables := make([]floordomain.Table, 0, 8)
	seats := make([]floordomain.Seat, 0, 32)
	for i := 1; i <= 8; i++ {
		tableID := fmt.Sprintf("T-%03d", i)
		tables = append(tables, floordomain.Table{
			TableID:   tableID,
			Name:      fmt.Sprintf("Table %d", i),
			Number:    i,
			Status:    floordomain.TableAvailable,
			CreatedAt: now,
			UpdatedAt: now,
		})
		for n := 1; n <= 4; n++ {
			seats = append(seats, floordomain.Seat{
				SeatID:  fmt.Sprintf("%s-S%d", tableID, n),
				TableID: tableID,
				Number:  n,
			})
		}
	}
	if err := conn.Clauses(clause.OnConflict{DoNothing: true}).Create(&tables).Error; err != nil {
		return err
	}
	return conn.Clauses(clause.OnConflict{DoNothing: true}).Create(&seats).Error
}
