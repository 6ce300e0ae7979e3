package request_models

// IDParam binds the :id path segment.
type IDParam struct {
	ID string `uri:"id" binding:"required"`
}
