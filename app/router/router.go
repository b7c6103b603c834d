package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"catalog-studio/app/controller"
)

// Controllers groups everything the route table wires up.
type Controllers struct {
	Project *controller.ProjectController
	Product *controller.ProductController
	Color   *controller.ColorController
	Image   *controller.ImageController
	Export  *controller.ExportController
}

// New builds the route table.
func New(c *Controllers) http.Handler {
	r := chi.NewRouter()

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/admin", func(r chi.Router) {
		r.Get("/project", c.Project.GetProject)
		r.Put("/project", c.Project.RenameProject)

		r.Post("/products", c.Product.CreateProduct)
		r.Put("/products/{id}", c.Product.UpdateProduct)
		r.Delete("/products/{id}", c.Product.DeleteProduct)
		r.Post("/products/{id}/duplicate", c.Product.DuplicateProduct)

		r.Post("/colors", c.Color.AddColor)
		r.Put("/colors/{id}", c.Color.UpdateColor)

		r.Post("/images", c.Image.UploadImage)
		r.Get("/images/{id}", c.Image.GetImage)
		r.Delete("/images/{id}", c.Image.DeleteImage)

		r.Get("/export", c.Export.Export)
		r.Get("/export/render", c.Export.RenderExport)
		r.Get("/export/png-page", c.Export.DownloadPNGPage)
	})

	return r
}
