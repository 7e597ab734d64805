package sql

import (
	_ "embed"
)

//go:embed queries/select_zip_county.sql
var SelectZipCounty string

//go:embed queries/select_county_names.sql
var SelectCountyNames string

//go:embed queries/select_localities.sql
var SelectLocalities string

//go:embed queries/select_gpci.sql
var SelectGPCI string

//go:embed queries/select_rvu.sql
var SelectRVU string

//go:embed queries/select_ptp_edits.sql
var SelectPTPEdits string

//go:embed queries/select_mue_edits.sql
var SelectMUEEdits string

//go:embed queries/select_addon_edits.sql
var SelectAddonEdits string

//go:embed queries/insert_load_run.sql
var InsertLoadRun string
