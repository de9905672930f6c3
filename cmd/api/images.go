package main

import (
	"errors"
	"mymdb/proj/internal/services/images"
	"net/http"
)

const imageField = "image"

func (app *Application) uploadImage(w http.ResponseWriter, r *http.Request) {
	movieID, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	// room for the multipart envelope around the file
	r.Body = http.MaxBytesReader(w, r.Body, app.cfg.Images.MaxUploadSize+1<<20)
	file, header, err := r.FormFile(imageField)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			app.Http.TooLarge(w, r, images.ErrTooLarge.Error())
		case errors.Is(err, http.ErrMissingFile):
			app.Http.UnprocessableEntity(w, r, map[string]string{imageField: "This field is required"})
		default:
			app.Http.BadRequest(w, r, err.Error())
		}
		return
	}
	defer file.Close()

	user := contextGetUser(r)
	image, err := app.Services.Images.Upload(r.Context(), movieID, user.ID, file, header.Size)
	if err != nil {
		switch {
		case errors.Is(err, images.ErrMovieNotFound):
			app.Http.NotFound(w, r, err.Error())
		case errors.Is(err, images.ErrTooLarge):
			app.Http.TooLarge(w, r, err.Error())
		case errors.Is(err, images.ErrNotAnImage), errors.Is(err, images.ErrEmpty):
			app.Http.UnprocessableEntity(w, r, map[string]string{imageField: err.Error()})
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Created(w, r, envelop{"image": imageView{MovieImage: *image, URL: app.Services.Images.URL(image.Image)}}, "")
}
