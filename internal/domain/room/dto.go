package room

type AvailabilityQuery struct {
	CheckIn  string `form:"check_in"`
	CheckOut string `form:"check_out"`
}

type Availability struct {
	RoomID    int64   `json:"room_id"`
	CheckIn   string  `json:"check_in"`
	CheckOut  string  `json:"check_out"`
	Available bool    `json:"available"`
	Conflicts []int64 `json:"conflicts"`
}
