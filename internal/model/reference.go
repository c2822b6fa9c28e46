package model

// Formats lists the record formats offered to clients for selection.
var Formats = []string{"Vinyl", "CD"}

// Genres lists the genres offered to clients for selection.
// Stored records may carry genres outside this list.
var Genres = []string{"Rock", "Pop", "Jazz", "Hip-Hop", "Classical", "Electronic"}
