package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rivals-mod-manager/costumes"
	"rivals-mod-manager/logger"
	"rivals-mod-manager/mods"
	"rivals-mod-manager/thumbnail"
)

var (
	metaTitle       string
	metaDescription string
	metaAuthor      string
	metaVersion     string
	metaCategory    string
	metaCharacter   string
	metaCostume     string
	metaTags        []string
	metaFavorite    bool
	metaNSFW        bool
	metaThumbnail   string
)

// metaCmd represents the meta command
var metaCmd = &cobra.Command{
	Use:   "meta <mod>",
	Short: "Edit a mod's metadata",
	Long: `Update a mod's metadata sidecar. Changing the title, category or character
also moves the mod's folder to match. Costume ids are validated against the
known costumes for the mod's character.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runMeta(cmd, args[0])
	},
}

func init() {
	metaCmd.Flags().StringVar(&metaTitle, "title", "", "display title")
	metaCmd.Flags().StringVar(&metaDescription, "description", "", "description text")
	metaCmd.Flags().StringVar(&metaAuthor, "author", "", "mod author")
	metaCmd.Flags().StringVar(&metaVersion, "version", "", "mod version string")
	metaCmd.Flags().StringVar(&metaCategory, "category", "", "category (UI, Audio, Skins, Gameplay)")
	metaCmd.Flags().StringVar(&metaCharacter, "character", "", "character display name, or 'none' to clear")
	metaCmd.Flags().StringVar(&metaCostume, "costume", "", "costume id for the mod's character, or 'none' to clear")
	metaCmd.Flags().StringSliceVar(&metaTags, "tags", nil, "comma-separated tags, replacing the existing set")
	metaCmd.Flags().BoolVar(&metaFavorite, "favorite", false, "mark as favorite")
	metaCmd.Flags().BoolVar(&metaNSFW, "nsfw", false, "mark as NSFW")
	metaCmd.Flags().StringVar(&metaThumbnail, "thumbnail", "", "image file to use as thumbnail")
	rootCmd.AddCommand(metaCmd)
}

func runMeta(cmd *cobra.Command, arg string) {
	cfg, svc := bootstrap(".")

	record, err := resolveMod(svc, arg)
	if err != nil {
		logger.Log.Fatalw("Could not resolve mod", zap.String("mod", arg), zap.Error(err))
	}

	metadata := record.Metadata
	applyMetaFlags(cmd, &metadata)

	if err := validateMetadata(&metadata); err != nil {
		logger.Log.Fatalw("Invalid metadata", zap.Error(err))
	}
	metadata.UpdatedAt = time.Now().UTC()

	updated, err := svc.UpdateMetadata(record.ID, &metadata)
	if err != nil {
		logger.Log.Fatalw("Failed to update metadata", zap.Error(err))
	}

	if metaThumbnail != "" {
		thumbs := thumbnail.NewService(cfg.MetadataDir)
		if _, err := thumbs.SaveFromFile(updated.ID, metaThumbnail, nil); err != nil {
			logger.Log.Fatalw("Failed to save thumbnail", zap.Error(err))
		}
	}

	fmt.Printf("Updated %s\n", updated.Name)
}

// applyMetaFlags copies only the flags the user actually set onto the
// metadata, so untouched fields survive.
func applyMetaFlags(cmd *cobra.Command, metadata *mods.ModMetadata) {
	if cmd.Flags().Changed("title") {
		metadata.Title = metaTitle
	}
	if cmd.Flags().Changed("description") {
		metadata.Description = metaDescription
	}
	if cmd.Flags().Changed("author") {
		author := metaAuthor
		metadata.Author = &author
	}
	if cmd.Flags().Changed("version") {
		version := metaVersion
		metadata.Version = &version
	}
	if cmd.Flags().Changed("category") {
		metadata.Category = mods.Category(metaCategory)
	}
	if cmd.Flags().Changed("character") {
		if strings.EqualFold(metaCharacter, "none") {
			metadata.Character = nil
		} else {
			character := mods.Character(metaCharacter)
			metadata.Character = &character
		}
	}
	if cmd.Flags().Changed("costume") {
		if strings.EqualFold(metaCostume, "none") {
			metadata.Costume = nil
		} else {
			costume := metaCostume
			metadata.Costume = &costume
		}
	}
	if cmd.Flags().Changed("tags") {
		metadata.Tags = metaTags
	}
	if cmd.Flags().Changed("favorite") {
		metadata.IsFavorite = metaFavorite
	}
	if cmd.Flags().Changed("nsfw") {
		metadata.IsNSFW = metaNSFW
	}
}

func validateMetadata(metadata *mods.ModMetadata) error {
	if metadata.Title == "" {
		return fmt.Errorf("%w: title must not be empty", mods.ErrInvalidInput)
	}
	if !metadata.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", mods.ErrInvalidInput, metadata.Category)
	}
	if metadata.Character != nil && !metadata.Character.Valid() {
		return fmt.Errorf("%w: unknown character %q", mods.ErrInvalidInput, *metadata.Character)
	}

	if metadata.Costume != nil {
		if metadata.Character == nil {
			return fmt.Errorf("%w: a costume requires a character", mods.ErrInvalidInput)
		}
		table, err := costumes.Load()
		if err != nil {
			return err
		}
		if _, ok := table.Get(string(*metadata.Character), *metadata.Costume); !ok {
			known := table.ForCharacter(string(*metadata.Character))
			ids := make([]string, len(known))
			for i, c := range known {
				ids[i] = c.ID
			}
			return fmt.Errorf("%w: unknown costume %q for %s (known: %s)",
				mods.ErrInvalidInput, *metadata.Costume, *metadata.Character, strings.Join(ids, ", "))
		}
	}
	return nil
}
