// Package catalog holds the static listing metadata the web client renders:
// categories, feature flags and map defaults.
package catalog

import (
	mapset "github.com/deckarep/golang-set"
)

type Category struct {
	Title string `json:"title"`
	Icon  string `json:"icon"`
}

var Categories = []Category{
	{Title: "호텔", Icon: "IoPartlySunnyOutline"},
	{Title: "모텔", Icon: "MdOutlineBedroomChild"},
	{Title: "게스트하우스", Icon: "FaUmbrellaBeach"},
	{Title: "아파트", Icon: "AiOutlineStar"},
	{Title: "주택", Icon: "TbSwimming"},
	{Title: "기타", Icon: "TbMoodKid"},
}

var categorySet = func() mapset.Set {
	s := mapset.NewThreadUnsafeSet()
	for _, c := range Categories {
		s.Add(c.Title)
	}
	return s
}()

func IsCategory(title string) bool {
	return categorySet.Contains(title)
}

func CategoryTitles() []string {
	titles := make([]string, 0, len(Categories))
	for _, c := range Categories {
		titles = append(titles, c.Title)
	}
	return titles
}

type FeatureType string

const (
	FreeCancel            FeatureType = "FREE_CANCEL"
	PaidCancel            FeatureType = "PAID_CANCEL"
	SelfCheckIn           FeatureType = "SELF_CHECKIN"
	SelfCheckInDisallowed FeatureType = "SELF_CHECKIN_DISALLOWED"
	FreeOfficeSpace       FeatureType = "FREE_OFFICE_SPACE"
	NoOfficeSpace         FeatureType = "NO_OFFICE_SPACE"
)

var FeatureDesc = map[FeatureType]string{
	FreeCancel:            "무료 취소 가능합니다.",
	PaidCancel:            "무료 취소가 불가능합니다.",
	SelfCheckIn:           "셀프 체크인이 가능합니다.",
	SelfCheckInDisallowed: "셀프 체크인이 불가능합니다.",
	FreeOfficeSpace:       "사무 시설이 있습니다.",
	NoOfficeSpace:         "사무 시설이 없습니다.",
}

type FeatureField struct {
	Field string `json:"field"`
	Label string `json:"label"`
}

// FeatureFormFields lists the boolean room attributes in form order.
var FeatureFormFields = []FeatureField{
	{Field: "freeCancel", Label: "무료 취소"},
	{Field: "selfCheckIn", Label: "셀프 체크인"},
	{Field: "officeSpace", Label: "사무시설"},
	{Field: "hasMountainView", Label: "마운틴 뷰"},
	{Field: "hasShampoo", Label: "욕실 용품"},
	{Field: "hasFreeLaundry", Label: "무료 세탁"},
	{Field: "hasAirConditioner", Label: "에어컨"},
	{Field: "hasWifi", Label: "무료 와이파이"},
	{Field: "hasBarbeque", Label: "바베큐 시설"},
	{Field: "hasFreeParking", Label: "무료 주차"},
}

// RoomEditFields are the payload keys a room owner may change.
var RoomEditFields = []string{
	"title",
	"category",
	"desc",
	"bedroomDesc",
	"price",
	"address",
	"images",
	"imageKeys",
	"freeCancel",
	"selfCheckIn",
	"officeSpace",
	"hasMountainView",
	"hasShampoo",
	"hasFreeLaundry",
	"hasAirConditioner",
	"hasWifi",
	"hasBarbeque",
	"hasFreeParking",
}

const (
	DefaultLat = "37.565337"
	DefaultLng = "126.9772095"
	ZoomLevel  = 7

	// 1x1 png placeholder for lazy loaded images
	BlurDataURL = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mOcNX9WPQAGAgJUl8IWQgAAAABJRU5ErkJggg=="
)

type MapDefaults struct {
	Lat       string `json:"lat"`
	Lng       string `json:"lng"`
	ZoomLevel int    `json:"zoomLevel"`
}

// Snapshot is the JSON document served to the web client.
type Snapshot struct {
	Categories     []Category             `json:"categories"`
	FeatureDesc    map[FeatureType]string `json:"featureDesc"`
	FeatureFields  []FeatureField         `json:"featureFields"`
	RoomEditFields []string               `json:"roomEditFields"`
	Map            MapDefaults            `json:"map"`
	BlurDataURL    string                 `json:"blurDataUrl"`
}

func Current() Snapshot {
	return Snapshot{
		Categories:     Categories,
		FeatureDesc:    FeatureDesc,
		FeatureFields:  FeatureFormFields,
		RoomEditFields: RoomEditFields,
		Map: MapDefaults{
			Lat:       DefaultLat,
			Lng:       DefaultLng,
			ZoomLevel: ZoomLevel,
		},
		BlurDataURL: BlurDataURL,
	}
}
