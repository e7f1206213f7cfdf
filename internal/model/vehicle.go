package model

// Vehicle mirrors the `vins` table. The VIN string itself is the
// primary key; there is no surrogate id.
//
// Fields:
//  VIN          – vehicle identification number, primary key.
//  Model        – commercial model name.
//  Year         – model year.
//  Insurance    – insurance provider name.
//  OwnerName    – owner contact details.
//  OwnerEmail   – owner contact details.
//  OwnerPhone   – owner contact details.
//  SalesAdvisor – advisor name assigned to this vehicle.
type Vehicle struct {
    VIN          string // vins.vin
    Model        string // vins.model
    Year         int    // vins.year
    Insurance    string // vins.insurance
    OwnerName    string // vins.owner_name
    OwnerEmail   string // vins.owner_email
    OwnerPhone   string // vins.owner_phone
    SalesAdvisor string // vins.sales_advisor
}
