package domain

import "strings"

// WasteCategory identifies the waste stream a container or collection belongs to.
type WasteCategory string

const (
	CategoryRecycling WasteCategory = "recycling"
	CategoryGeneral   WasteCategory = "general"
	CategoryPaper     WasteCategory = "paper"
	CategoryGlass     WasteCategory = "glass"
	CategoryOrganic   WasteCategory = "organic"
	CategoryPlastic   WasteCategory = "plastic"
)

// WasteCategories lists every supported waste stream in display order.
func WasteCategories() []WasteCategory {
	return []WasteCategory{
		CategoryRecycling,
		CategoryGeneral,
		CategoryPaper,
		CategoryGlass,
		CategoryOrganic,
		CategoryPlastic,
	}
}

// Display returns the human readable label used by the dashboard.
func (c WasteCategory) Display() string {
	switch c {
	case CategoryRecycling:
		return "Recycling"
	case CategoryGeneral:
		return "General Waste"
	case CategoryPaper:
		return "Paper/Carton"
	case CategoryGlass:
		return "Glass"
	case CategoryOrganic:
		return "Organic"
	case CategoryPlastic:
		return "Plastic"
	default:
		return string(c)
	}
}

// ParseWasteCategory resolves both the canonical token and the display label.
func ParseWasteCategory(value string) (WasteCategory, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "recycling":
		return CategoryRecycling, true
	case "general", "general waste":
		return CategoryGeneral, true
	case "paper", "paper/carton", "paper_carton":
		return CategoryPaper, true
	case "glass":
		return CategoryGlass, true
	case "organic":
		return CategoryOrganic, true
	case "plastic":
		return CategoryPlastic, true
	default:
		return "", false
	}
}

// ContainerType distinguishes the two deployed container models.
type ContainerType string

const (
	// TypeUnderground is a classic buried container with a 500kg capacity.
	TypeUnderground ContainerType = "underground"
	// TypeSmartBin is a sensor-equipped street bin with a 100kg capacity.
	TypeSmartBin ContainerType = "smart_bin"
)

// Capacity returns the rated capacity in kilograms for the container model.
func (t ContainerType) Capacity() int {
	if t == TypeSmartBin {
		return 100
	}
	return 500
}

// Display returns the dashboard label for the container model.
func (t ContainerType) Display() string {
	if t == TypeSmartBin {
		return "Smart Bin"
	}
	return "Underground Container"
}

// ParseContainerType resolves canonical tokens and display labels.
func ParseContainerType(value string) (ContainerType, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "underground", "underground container":
		return TypeUnderground, true
	case "smart_bin", "smart bin", "smartbin":
		return TypeSmartBin, true
	default:
		return "", false
	}
}

// ContainerStatus reports the lid state of smart bins. Underground containers
// have no sensor and always report StatusNotApplicable.
type ContainerStatus string

const (
	StatusOpen          ContainerStatus = "open"
	StatusClosed        ContainerStatus = "closed"
	StatusNotApplicable ContainerStatus = "n/a"
)

// ComplaintStatus tracks the lifecycle of a resident complaint.
type ComplaintStatus string

const (
	ComplaintNew      ComplaintStatus = "new"
	ComplaintPending  ComplaintStatus = "pending"
	ComplaintResolved ComplaintStatus = "resolved"
)

// ComplaintType enumerates the issue kinds residents can report.
type ComplaintType string

const (
	ComplaintContainerFull     ComplaintType = "container_full"
	ComplaintWasteNextTo       ComplaintType = "waste_next_to_container"
	ComplaintContainerBroken   ComplaintType = "container_broken"
	ComplaintSmartBinNotOpen   ComplaintType = "smart_bin_not_opening"
	ComplaintBadSmell          ComplaintType = "bad_smell"
	ComplaintIncorrectDisposal ComplaintType = "incorrect_waste_disposal"
	ComplaintNotCollected      ComplaintType = "waste_not_collected"
	ComplaintCollectionNoise   ComplaintType = "noise_during_collection"
)

// ComplaintTypes lists the reportable issue kinds in form order.
func ComplaintTypes() []ComplaintType {
	return []ComplaintType{
		ComplaintContainerFull,
		ComplaintWasteNextTo,
		ComplaintContainerBroken,
		ComplaintSmartBinNotOpen,
		ComplaintBadSmell,
		ComplaintIncorrectDisposal,
		ComplaintNotCollected,
		ComplaintCollectionNoise,
	}
}

// Display returns the resident-facing label for a complaint type.
func (t ComplaintType) Display() string {
	switch t {
	case ComplaintContainerFull:
		return "Container full"
	case ComplaintWasteNextTo:
		return "Waste next to container"
	case ComplaintContainerBroken:
		return "Container broken"
	case ComplaintSmartBinNotOpen:
		return "Smart bin not opening"
	case ComplaintBadSmell:
		return "Bad smell"
	case ComplaintIncorrectDisposal:
		return "Incorrect waste disposal"
	case ComplaintNotCollected:
		return "Waste not collected"
	case ComplaintCollectionNoise:
		return "Noise during collection"
	default:
		return string(t)
	}
}

// ParseComplaintType resolves canonical tokens and display labels.
func ParseComplaintType(value string) (ComplaintType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	for _, t := range ComplaintTypes() {
		if string(t) == normalized {
			return t, true
		}
	}
	return "", false
}
