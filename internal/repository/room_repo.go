package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	return database.Conn(ctx, r.db).Create(room).Error
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var room domain.Room
	if err := database.Conn(ctx, r.db).First(&room, id).Error; err != nil {
		return nil, notFound(err, domain.ErrRoomNotFound)
	}
	return &room, nil
}

// GetForUpdate locks the room row so bookings for it are created one at a time.
func (r *RoomRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Room, error) {
	var room domain.Room
	err := database.Conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&room, id).Error
	if err != nil {
		return nil, notFound(err, domain.ErrRoomNotFound)
	}
	return &room, nil
}

func (r *RoomRepository) GetByNumber(ctx context.Context, number string) (*domain.Room, error) {
	var room domain.Room
	err := database.Conn(ctx, r.db).Where("room_number = ?", number).First(&room).Error
	if err != nil {
		return nil, notFound(err, domain.ErrRoomNotFound)
	}
	return &room, nil
}

func (r *RoomRepository) List(ctx context.Context) ([]domain.Room, error) {
	var out []domain.Room
	err := database.Conn(ctx, r.db).Order("room_number ASC").Find(&out).Error
	return out, err
}

func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	res := database.Conn(ctx, r.db).Delete(&domain.Room{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}
