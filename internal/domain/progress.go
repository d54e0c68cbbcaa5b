package domain

// ProgressFunc reports download progress during paged fetches.
// Called repeatedly during pagination: (50, 320), (100, 320), ...
type ProgressFunc func(loaded, total int)
