package dto

// CardRequest is the POST/PUT payload. Status is ignored on create and
// defaults to TODO on replace when absent.
type CardRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Status      string `json:"status"`
}

// CardPatch is the PATCH payload. Pointer fields distinguish "absent, leave
// untouched" (nil) from "explicitly set". An explicit empty string clears
// description/color but is rejected for name.
type CardPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Status      *string `json:"status"`
}
