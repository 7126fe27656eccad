package server

import (
	"net/http"
	"strconv"

	"mediafs/pkg/media"
	"mediafs/pkg/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/labstack/echo/v4"
)

// The closed action set. Unknown actions are rejected at the boundary, not
// inside a catch-all branch.
const (
	actionListFiles      = "list_files"
	actionCreateFolder   = "create_folder"
	actionUploadFile     = "upload_file"
	actionDeleteItem     = "delete_item"
	actionRenameItem     = "rename_item"
	actionAssignCategory = "assign_category"
	actionGetCategories  = "get_categories"
	actionAddCategory    = "add_category"
	actionDeleteCategory = "delete_category"
	actionGetSettings    = "get_settings"
	actionSaveSettings   = "save_settings"
	actionDiskUsage      = "disk_usage"
)

// validationFailure adapts a boundary validation error into the response
// mapping.
type validationFailure struct {
	reason string
}

func (e validationFailure) Error() string {
	return e.reason
}

type listFilesRequest struct {
	Path string
}

type createFolderRequest struct {
	Name string
	Path string
}

func (r createFolderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
	)
}

type deleteItemRequest struct {
	ItemPath string
}

func (r deleteItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ItemPath, validation.Required),
	)
}

type renameItemRequest struct {
	OldPath string
	NewName string
}

func (r renameItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OldPath, validation.Required),
		validation.Field(&r.NewName, validation.Required),
	)
}

type assignCategoryRequest struct {
	FilePath string
	Slug     string // empty slug unassigns
}

func (r assignCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FilePath, validation.Required),
	)
}

type addCategoryRequest struct {
	Name string
}

func (r addCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
	)
}

type deleteCategoryRequest struct {
	Slug string
}

func (r deleteCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Slug, validation.Required),
	)
}

// dispatch decodes the action field, builds the matching typed request and
// runs it against the service bound for this caller.
func (ms *MediaServer) dispatch(ctx echo.Context, svc *media.Service, identity models.Identity) error {
	switch ctx.FormValue("action") {
	case actionListFiles:
		req := listFilesRequest{Path: ctx.FormValue("path")}
		listing, err := svc.ListItems(req.Path)
		if err != nil {
			return respondError(ctx, err)
		}
		return respondData(ctx, listing)

	case actionCreateFolder:
		req := createFolderRequest{Name: ctx.FormValue("name"), Path: ctx.FormValue("path")}
		if err := req.Validate(); err != nil {
			return respondError(ctx, validationFailure{reason: "folder name is required"})
		}
		if err := svc.CreateFolder(req.Name, req.Path, identity); err != nil {
			return respondError(ctx, err)
		}
		return respondOK(ctx)

	case actionUploadFile:
		return ms.handleUpload(ctx, svc, identity)

	case actionDeleteItem:
		req := deleteItemRequest{ItemPath: ctx.FormValue("item_path")}
		if err := req.Validate(); err != nil {
			return respondError(ctx, validationFailure{reason: "item path is required"})
		}
		if err := svc.DeleteItem(req.ItemPath); err != nil {
			return respondError(ctx, err)
		}
		return respondOK(ctx)

	case actionRenameItem:
		req := renameItemRequest{OldPath: ctx.FormValue("old_path"), NewName: ctx.FormValue("new_name")}
		if err := req.Validate(); err != nil {
			return respondError(ctx, validationFailure{reason: "old path and new name are required"})
		}
		if err := svc.RenameItem(req.OldPath, req.NewName); err != nil {
			return respondError(ctx, err)
		}
		return respondOK(ctx)

	case actionAssignCategory:
		req := assignCategoryRequest{FilePath: ctx.FormValue("file_path"), Slug: ctx.FormValue("slug")}
		if err := req.Validate(); err != nil {
			return respondError(ctx, validationFailure{reason: "file path is required"})
		}
		if err := svc.AssignCategory(req.FilePath, req.Slug); err != nil {
			return respondError(ctx, err)
		}
		return respondOK(ctx)

	case actionGetCategories:
		categories, err := svc.Categories()
		if err != nil {
			return respondError(ctx, err)
		}
		return respondData(ctx, categories)

	case actionAddCategory:
		req := addCategoryRequest{Name: ctx.FormValue("name")}
		if err := req.Validate(); err != nil {
			return respondError(ctx, validationFailure{reason: "category name is required"})
		}
		if _, err := svc.AddCategory(req.Name); err != nil {
			return respondError(ctx, err)
		}
		return respondOK(ctx)

	case actionDeleteCategory:
		req := deleteCategoryRequest{Slug: ctx.FormValue("slug")}
		if err := req.Validate(); err != nil {
			return respondError(ctx, validationFailure{reason: "category slug is required"})
		}
		if err := svc.DeleteCategory(req.Slug); err != nil {
			return respondError(ctx, err)
		}
		return respondOK(ctx)

	case actionGetSettings:
		settings, err := svc.GetSettings()
		if err != nil {
			return respondError(ctx, err)
		}
		return respondData(ctx, settings)

	case actionSaveSettings:
		settings, err := decodeSettings(ctx)
		if err != nil {
			return respondError(ctx, err)
		}
		if err := svc.SaveSettings(settings); err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, response{Success: true, Message: "settings saved"})

	case actionDiskUsage:
		usage, err := svc.DiskUsage()
		if err != nil {
			return respondError(ctx, err)
		}
		return respondData(ctx, usage)

	default:
		return respondError(ctx, validationFailure{reason: "unknown action"})
	}
}

// handleUpload reads the multipart payload and hands the stream to the
// service; the pipeline enforces policy on the actual bytes.
func (ms *MediaServer) handleUpload(ctx echo.Context, svc *media.Service, identity models.Identity) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return respondError(ctx, validationFailure{reason: "file parameter is required"})
	}

	src, err := file.Open()
	if err != nil {
		return respondError(ctx, media.StorageError{Op: "open upload", Err: err})
	}
	defer func() { _ = src.Close() }()

	stored, err := svc.Upload(src, file.Filename, ctx.FormValue("path"), identity)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, response{Success: true, Filename: stored})
}

// decodeSettings builds a Settings document from the save_settings form
// fields. allowed_types repeats once per selected group.
func decodeSettings(ctx echo.Context) (models.Settings, error) {
	form, err := ctx.FormParams()
	if err != nil {
		return models.Settings{}, validationFailure{reason: "invalid form payload"}
	}

	settings := models.DefaultSettings()

	if raw := ctx.FormValue("max_upload_size"); raw != "" {
		size, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return models.Settings{}, validationFailure{reason: "max upload size must be a number"}
		}
		settings.MaxUploadSize = size
	}
	if raw := ctx.FormValue("max_width"); raw != "" {
		width, err := strconv.Atoi(raw)
		if err != nil {
			return models.Settings{}, validationFailure{reason: "max width must be a number"}
		}
		settings.MaxWidth = width
	}
	if raw := ctx.FormValue("max_height"); raw != "" {
		height, err := strconv.Atoi(raw)
		if err != nil {
			return models.Settings{}, validationFailure{reason: "max height must be a number"}
		}
		settings.MaxHeight = height
	}

	// Checkbox semantics: the field set means enabled, absent means off.
	settings.AutoWebp = formFlag(ctx, "auto_webp")
	settings.StripExif = formFlag(ctx, "strip_exif")
	settings.OrganizeMonthYear = formFlag(ctx, "organize_month_year")
	settings.MemberUploadsEnabled = formFlag(ctx, "member_uploads_enabled")

	// An omitted allowed_types list is an explicit empty set, not the
	// default: the settings form always posts the full state.
	settings.AllowedTypes = form["allowed_types"]
	if settings.AllowedTypes == nil {
		settings.AllowedTypes = []string{}
	}

	return settings, nil
}

func formFlag(ctx echo.Context, name string) bool {
	switch ctx.FormValue(name) {
	case "1", "true", "on":
		return true
	}
	return false
}
