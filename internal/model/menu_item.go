package model

// MenuItem is a dish or drink offered by the restaurant. The menu
// is reference data for the presentation layer; the reservation
// workflow never touches it.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name of the item.
//  Description – free-text description (nullable).
//  Price       – price as a decimal string (e.g. "12.50").
//  Category    – menu section (entrées, plats, desserts, boissons).
//  ImageURL    – optional image location (nullable).
//  IsAvailable – whether the item is currently offered.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type MenuItem struct {
	ID          uint64  // menuitems.id
	Name        string  // menuitems.name
	Description *string // menuitems.description (nullable)
	Price       string  // menuitems.price
	Category    string  // menuitems.category
	ImageURL    *string // menuitems.imageUrl (nullable)
	IsAvailable bool    // menuitems.isAvailable
	CreatedAt   string  // menuitems.createdAt
	UpdatedAt   string  // menuitems.updatedAt
}
