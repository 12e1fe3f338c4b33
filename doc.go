// Package dictcc is a bilingual dictionary engine for dict.cc exports.
//
// A Catalog owns the per-pair indexes in a data directory and imports new
// ones. An opened Database hands out Sessions that translate in one
// direction:
//
//	catalog, _ := dictcc.NewCatalog(dir, nil)
//	db, err := catalog.Open(core.LanguagePair{Left: "de", Right: "en"})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//	session, err := db.NewSession("de", dictcc.WithDistance(1))
//	translations, err := session.Lookup(ctx, "Haus")
package dictcc
