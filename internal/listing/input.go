package listing

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/staybnb-project/backend/internal/catalog"
	"github.com/staybnb-project/backend/internal/database/models"
)

// PriceValue accepts a JSON number or a numeric string.
type PriceValue string

func (p *PriceValue) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*p = ""
		return nil
	}
	if strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[") {
		return fmt.Errorf("price must be a number or a string")
	}

	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		s = strings.TrimSpace(str)
	}

	*p = PriceValue(s)
	return nil
}

// Int coerces the price to an integer, truncating any fractional part.
func (p PriceValue) Int() (int, error) {
	s := string(p)
	if n, err := strconv.Atoi(s); err == nil {
		if n > math.MaxInt32 || n < math.MinInt32 {
			return 0, fmt.Errorf("price %q is out of range", s)
		}
		return n, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("price %q is not a number", s)
	}
	return int(f), nil
}

// RoomInput is the client payload for create and update. It has no id,
// userId, lat or lng: those are always derived on the server.
type RoomInput struct {
	Title       string     `json:"title" validate:"required"`
	Category    string     `json:"category" validate:"required,category"`
	Desc        string     `json:"desc"`
	BedroomDesc string     `json:"bedroomDesc"`
	Price       PriceValue `json:"price" validate:"required"`
	Address     string     `json:"address" validate:"required"`
	Images      []string   `json:"images"`
	ImageKeys   []string   `json:"imageKeys"`

	FreeCancel        bool `json:"freeCancel"`
	SelfCheckIn       bool `json:"selfCheckIn"`
	OfficeSpace       bool `json:"officeSpace"`
	HasMountainView   bool `json:"hasMountainView"`
	HasShampoo        bool `json:"hasShampoo"`
	HasFreeLaundry    bool `json:"hasFreeLaundry"`
	HasAirConditioner bool `json:"hasAirConditioner"`
	HasWifi           bool `json:"hasWifi"`
	HasBarbeque       bool `json:"hasBarbeque"`
	HasFreeParking    bool `json:"hasFreeParking"`
}

type editField struct {
	key    string
	field  string
	column string
}

// address and price are not listed: every write sets them.
var editFields = []editField{
	{"title", "Title", "title"},
	{"category", "Category", "category"},
	{"desc", "Desc", "description"},
	{"bedroomDesc", "BedroomDesc", "bedroom_desc"},
	{"images", "Images", "images"},
	{"imageKeys", "ImageKeys", "image_keys"},
	{"freeCancel", "FreeCancel", "free_cancel"},
	{"selfCheckIn", "SelfCheckIn", "self_check_in"},
	{"officeSpace", "OfficeSpace", "office_space"},
	{"hasMountainView", "HasMountainView", "has_mountain_view"},
	{"hasShampoo", "HasShampoo", "has_shampoo"},
	{"hasFreeLaundry", "HasFreeLaundry", "has_free_laundry"},
	{"hasAirConditioner", "HasAirConditioner", "has_air_conditioner"},
	{"hasWifi", "HasWifi", "has_wifi"},
	{"hasBarbeque", "HasBarbeque", "has_barbeque"},
	{"hasFreeParking", "HasFreeParking", "has_free_parking"},
}

var alwaysWritten = []string{"address", "price", "user_id", "lat", "lng", "updated_at"}

// DecodeRoomInput decodes a JSON body and reports which keys it carried.
func DecodeRoomInput(r io.Reader) (input RoomInput, present []string, err error) {
	var body []byte
	if body, err = io.ReadAll(r); err != nil {
		err = invalidInput("Invalid request body", err)
		return
	}

	var raw map[string]json.RawMessage
	if err = json.Unmarshal(body, &raw); err != nil {
		err = invalidInput("Invalid request body", err)
		return
	}
	if err = json.Unmarshal(body, &input); err != nil {
		err = invalidInput("Invalid request body", err)
		return
	}

	present = make([]string, 0, len(raw))
	for k := range raw {
		present = append(present, k)
	}
	sort.Strings(present)
	return
}

// updateTargets returns the columns to write and the struct fields to
// validate for an update carrying the given payload keys.
func updateTargets(present []string) (columns []string, fields []string) {
	keys := make(map[string]bool, len(present))
	for _, k := range present {
		keys[k] = true
	}

	columns = append(columns, alwaysWritten...)
	fields = append(fields, "Address", "Price")
	for _, f := range editFields {
		if keys[f.key] {
			columns = append(columns, f.column)
			fields = append(fields, f.field)
		}
	}
	return
}

func (in RoomInput) toRoom() *models.Room {
	room := &models.Room{
		Title:             in.Title,
		Category:          in.Category,
		Desc:              in.Desc,
		BedroomDesc:       in.BedroomDesc,
		Address:           in.Address,
		Images:            in.Images,
		ImageKeys:         in.ImageKeys,
		FreeCancel:        in.FreeCancel,
		SelfCheckIn:       in.SelfCheckIn,
		OfficeSpace:       in.OfficeSpace,
		HasMountainView:   in.HasMountainView,
		HasShampoo:        in.HasShampoo,
		HasFreeLaundry:    in.HasFreeLaundry,
		HasAirConditioner: in.HasAirConditioner,
		HasWifi:           in.HasWifi,
		HasBarbeque:       in.HasBarbeque,
		HasFreeParking:    in.HasFreeParking,
	}
	if room.Images == nil {
		room.Images = []string{}
	}
	if room.ImageKeys == nil {
		room.ImageKeys = []string{}
	}
	return room
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return catalog.IsCategory(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

func validationError(err error) *Error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return invalidInput("Invalid field: "+verrs[0].Field(), err)
	}
	return invalidInput("Invalid room payload", err)
}

func parsePrice(p PriceValue) (price int, err error) {
	if price, err = p.Int(); err != nil {
		err = invalidInput("Invalid price", err)
		return
	}
	if price < 0 {
		err = invalidInput("Invalid price", fmt.Errorf("negative price %d", price))
	}
	return
}
