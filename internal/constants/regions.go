package constants

type Region string

// AllRegions is a filter sentinel only. It is never a valid stored region.
const AllRegions = "All Regions"

const (
	RegionGreaterAccra Region = "Greater Accra"
	RegionAshanti      Region = "Ashanti"
	RegionNorthern     Region = "Northern"
	RegionVolta        Region = "Volta"
	RegionEastern      Region = "Eastern"
	RegionWestern      Region = "Western"
)

var Regions = []Region{
	RegionGreaterAccra,
	RegionAshanti,
	RegionNorthern,
	RegionVolta,
	RegionEastern,
	RegionWestern,
}

func IsValidRegion(region string) bool {
	switch Region(region) {
	case RegionGreaterAccra,
		RegionAshanti,
		RegionNorthern,
		RegionVolta,
		RegionEastern,
		RegionWestern:
		return true
	default:
		return false
	}
}
