// Package taxreport turns a kraken-style classification report and a
// taxonomy dump into an annotated taxonomy table: the top N most abundant
// taxa, each tested for enrichment relative to its share of the reference
// database.
//
// Quick start:
//
//	r := taxreport.New(taxreport.WithTopN(30))
//	rep, err := r.AnalyzeFiles(ctx, "sample.kreport", "nt.taxdump.gz")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, row := range rep.Rows {
//	    fmt.Println(row.Depth, row.Name, row.Enrichment)
//	}
//	rep.WriteHTML(os.Stdout)
//
// A Reporter holds no state between calls and is safe for concurrent use.
package taxreport
